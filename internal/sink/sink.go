// ABOUTME: Audio sink interface definition
// ABOUTME: Common contract for the playback device and test doubles
package sink

// Sink accepts raw interleaved PCM bytes for playback.
type Sink interface {
	// Write blocks until the payload is accepted into the playback queue.
	Write(data []byte) error

	// Close stops playback and releases the device.
	Close() error
}
