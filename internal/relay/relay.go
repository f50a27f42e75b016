// ABOUTME: The receive-then-write relay loop
// ABOUTME: Moves datagram payloads verbatim from the socket to the audio sink
package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/pcmcast/pcmcast-go/internal/sink"
)

// Source yields datagram payloads. The sender address is reported but
// unused by the loop.
type Source interface {
	Receive() ([]byte, *net.UDPAddr, error)
}

// Stats is a snapshot of relay counters.
type Stats struct {
	Received    uint64
	Played      uint64
	Empty       uint64
	BytesPlayed uint64
}

// Relay runs the synchronous receive-then-write loop. Payload bytes are
// not transformed, validated, or aligned; whatever arrives goes to the
// sink as-is.
type Relay struct {
	src Source
	snk sink.Sink

	received atomic.Uint64
	played   atomic.Uint64
	empty    atomic.Uint64
	bytes    atomic.Uint64
}

// New creates a relay between a source and a sink.
func New(src Source, snk sink.Sink) *Relay {
	return &Relay{
		src: src,
		snk: snk,
	}
}

// Run blocks in the loop until the context is cancelled, the source is
// closed, or the source or sink reports an unrecoverable error. It does
// not close either resource; the caller owns their release.
func (r *Relay) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		data, _, err := r.src.Receive()
		if err != nil {
			// Shutdown closes the socket to unblock this read.
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("receive failed: %w", err)
		}

		r.received.Add(1)

		if len(data) == 0 {
			r.empty.Add(1)
			continue
		}

		if err := r.snk.Write(data); err != nil {
			return fmt.Errorf("sink write failed: %w", err)
		}

		r.played.Add(1)
		r.bytes.Add(uint64(len(data)))
	}
}

// Stats returns a snapshot of the relay counters.
func (r *Relay) Stats() Stats {
	return Stats{
		Received:    r.received.Load(),
		Played:      r.played.Load(),
		Empty:       r.empty.Load(),
		BytesPlayed: r.bytes.Load(),
	}
}
