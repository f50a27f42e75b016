// ABOUTME: Paced UDP sender for raw PCM datagrams
// ABOUTME: Emits fixed-size packets at real-time rate toward a receiver
package sender

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/pcmcast/pcmcast-go/internal/audio"
)

// Sender reads PCM from a source and sends it to a receiver in datagrams
// of audio.BufferFrames frames, paced to real time.
type Sender struct {
	conn *net.UDPConn
	src  Source
}

// New creates a sender toward addr. The source must already be in the
// wire format; there is no resampling on the way out.
func New(addr string, src Source) (*Sender, error) {
	if src.SampleRate() != audio.SampleRate || src.Channels() != audio.Channels {
		return nil, fmt.Errorf("source format %dHz/%dch does not match wire format %dHz/%dch",
			src.SampleRate(), src.Channels(), audio.SampleRate, audio.Channels)
	}

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve receiver address: %w", err)
	}

	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial receiver: %w", err)
	}

	return &Sender{conn: conn, src: src}, nil
}

// Run sends packets until the context is cancelled or the source is
// exhausted.
func (s *Sender) Run(ctx context.Context) error {
	samplesPerPacket := audio.BufferFrames * audio.Channels
	samples := make([]int16, samplesPerPacket)

	ticker := time.NewTicker(audio.BufferDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		n, err := s.src.Read(samples)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("source read failed: %w", err)
		}
		if n == 0 {
			continue
		}

		if _, err := s.conn.Write(pcmBytes(samples[:n])); err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
	}
}

// Close releases the socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}

// pcmBytes packs int16 samples as little-endian bytes.
func pcmBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(sample))
	}
	return out
}
