// ABOUTME: Connectionless datagram receiver for raw PCM payloads
// ABOUTME: Binds a UDP socket and hands payloads to the relay loop
package receiver

import (
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/pcmcast/pcmcast-go/internal/audio"
)

// UDPReceiver reads datagrams from a bound UDP socket. Payloads longer
// than audio.MaxDatagram are truncated by the read; shorter payloads pass
// through unmodified.
type UDPReceiver struct {
	conn *net.UDPConn
	buf  []byte

	closeOnce sync.Once
	closeErr  error
}

// Listen binds a UDP socket to bindAddr:port.
func Listen(bindAddr string, port int) (*UDPReceiver, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", bindAddr, port))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve UDP address: %w", err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on UDP: %w", err)
	}

	log.Printf("UDP receiver bound: %s", conn.LocalAddr())

	return &UDPReceiver{
		conn: conn,
		buf:  make([]byte, audio.MaxDatagram),
	}, nil
}

// Receive blocks until a datagram arrives and returns its payload and the
// sender address. Returns net.ErrClosed after Close.
func (r *UDPReceiver) Receive() ([]byte, *net.UDPAddr, error) {
	n, remoteAddr, err := r.conn.ReadFromUDP(r.buf)
	if err != nil {
		return nil, nil, err
	}

	// The read buffer is reused; hand out a copy.
	payload := make([]byte, n)
	copy(payload, r.buf[:n])

	return payload, remoteAddr, nil
}

// LocalAddr returns the bound address.
func (r *UDPReceiver) LocalAddr() net.Addr {
	return r.conn.LocalAddr()
}

// Port returns the bound UDP port.
func (r *UDPReceiver) Port() int {
	return r.conn.LocalAddr().(*net.UDPAddr).Port
}

// Close releases the socket and unblocks a pending Receive. Safe to call
// more than once.
func (r *UDPReceiver) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.conn.Close()
	})
	return r.closeErr
}
