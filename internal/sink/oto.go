// ABOUTME: Oto-based audio sink implementation
// ABOUTME: Feeds a persistent oto player through a pipe, with software volume
package sink

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/pcmcast/pcmcast-go/internal/audio"
)

// Device plays PCM bytes on the default system output using oto.
type Device struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter

	mu     sync.Mutex
	volume int
	muted  bool

	closeOnce sync.Once
	ready     bool
}

// Open initializes the default output device with the fixed stream format.
func Open() (*Device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: audio.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   audio.BufferDuration(),
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	d := &Device{
		otoCtx: ctx,
		volume: 100,
	}

	// Pipe feeds a persistent player so writes block until the device
	// drains its queue, rather than spawning a player per packet.
	d.pipeReader, d.pipeWriter = io.Pipe()
	d.player = d.otoCtx.NewPlayer(d.pipeReader)
	d.player.Play()

	d.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d frame buffer",
		audio.SampleRate, audio.Channels, audio.BufferFrames)

	return d, nil
}

// Write blocks until the payload is accepted into the playback queue.
// At volume 100 unmuted the bytes pass through untouched.
func (d *Device) Write(data []byte) error {
	if !d.ready {
		return fmt.Errorf("output not initialized")
	}

	d.mu.Lock()
	volume, muted := d.volume, d.muted
	d.mu.Unlock()

	out := data
	if volume != 100 || muted {
		out = applyVolume(data, volume, muted)
	}

	if _, err := d.pipeWriter.Write(out); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close stops playback and releases the device. Safe to call more than
// once; the release happens only on the first call.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		if d.pipeWriter != nil {
			d.pipeWriter.Close()
		}
		if d.player != nil {
			d.player.Close()
		}
		if d.pipeReader != nil {
			d.pipeReader.Close()
		}
		if d.otoCtx != nil {
			// oto allows one context per process, so suspend rather
			// than tear down.
			d.otoCtx.Suspend()
		}
		d.ready = false
	})
	return nil
}

// SetVolume sets the volume (0-100).
func (d *Device) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	d.mu.Lock()
	d.volume = volume
	d.mu.Unlock()
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state.
func (d *Device) SetMuted(muted bool) {
	d.mu.Lock()
	d.muted = muted
	d.mu.Unlock()
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume.
func (d *Device) GetVolume() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.volume
}

// IsMuted returns mute state.
func (d *Device) IsMuted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.muted
}

// applyVolume scales whole int16 samples by the volume multiplier. A
// trailing partial-sample byte is carried over unchanged.
func applyVolume(data []byte, volume int, muted bool) []byte {
	multiplier := getVolumeMultiplier(volume, muted)

	out := make([]byte, len(data))
	n := len(data) / audio.BytesPerSample * audio.BytesPerSample
	for i := 0; i < n; i += audio.BytesPerSample {
		sample := int16(binary.LittleEndian.Uint16(data[i:]))
		scaled := int16(float64(sample) * multiplier)
		binary.LittleEndian.PutUint16(out[i:], uint16(scaled))
	}
	copy(out[n:], data[n:])

	return out
}

// getVolumeMultiplier calculates volume multiplier.
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
