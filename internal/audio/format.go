// ABOUTME: Fixed audio format constants for the relay
// ABOUTME: Stereo signed 16-bit little-endian PCM at 48kHz
package audio

import "time"

const (
	// SampleRate is the fixed stream sample rate in Hz.
	SampleRate = 48000

	// Channels is the fixed channel count (stereo).
	Channels = 2

	// BitDepth is the bits per sample.
	BitDepth = 16

	// BytesPerSample is the storage size of one sample.
	BytesPerSample = BitDepth / 8

	// FrameBytes is one sample per channel at one time instant.
	FrameBytes = Channels * BytesPerSample

	// BufferFrames is the playback device's internal buffer size in frames.
	BufferFrames = 1024

	// MaxDatagram is the largest payload a sender emits per packet.
	MaxDatagram = 4096
)

// BufferDuration returns the playback buffer length as a duration
// (BufferFrames at SampleRate).
func BufferDuration() time.Duration {
	return time.Duration(BufferFrames) * time.Second / SampleRate
}

// FrameCount returns the number of whole frames in n bytes. Trailing
// partial-frame bytes are not counted.
func FrameCount(n int) int {
	return n / FrameBytes
}
