// ABOUTME: Audio sources for the sender tool
// ABOUTME: Test tone, MP3, and FLAC inputs producing int16 PCM
package sender

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"

	"github.com/pcmcast/pcmcast-go/internal/audio"
)

// Source provides interleaved int16 PCM samples.
type Source interface {
	// Read fills samples with PCM data. Returns the number of samples
	// read, io.EOF when the source is exhausted.
	Read(samples []int16) (int, error)
	// SampleRate returns the source sample rate.
	SampleRate() int
	// Channels returns the channel count.
	Channels() int
	// Close releases the source.
	Close() error
}

// NewSource creates a source from a file path. An empty path yields the
// test tone generator.
func NewSource(path string, toneFreq float64) (Source, error) {
	if path == "" {
		return NewToneSource(toneFreq), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return NewMP3Source(path)
	case ".flac":
		return NewFLACSource(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac)", ext)
	}
}

// ToneSource generates a sine wave test tone.
type ToneSource struct {
	frequency   float64
	sampleIndex uint64
}

// NewToneSource creates a tone generator at the given frequency.
func NewToneSource(frequency float64) *ToneSource {
	if frequency <= 0 {
		frequency = 440.0 // A4
	}
	return &ToneSource{frequency: frequency}
}

func (s *ToneSource) Read(samples []int16) (int, error) {
	numFrames := len(samples) / audio.Channels

	for i := 0; i < numFrames; i++ {
		t := float64(s.sampleIndex+uint64(i)) / float64(audio.SampleRate)
		v := math.Sin(2 * math.Pi * s.frequency * t)

		// 50% volume, duplicated to both channels.
		pcm := int16(v * 32767.0 * 0.5)
		samples[i*2] = pcm
		samples[i*2+1] = pcm
	}

	s.sampleIndex += uint64(numFrames)

	return numFrames * audio.Channels, nil
}

func (s *ToneSource) SampleRate() int { return audio.SampleRate }
func (s *ToneSource) Channels() int   { return audio.Channels }
func (s *ToneSource) Close() error    { return nil }

// MP3Source reads from an MP3 file. The go-mp3 decoder always outputs
// stereo int16.
type MP3Source struct {
	file       *os.File
	decoder    *mp3.Decoder
	sampleRate int
}

// NewMP3Source creates a new MP3 audio source.
func NewMP3Source(path string) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	log.Printf("Loaded MP3: %s (sample rate: %d Hz)", filepath.Base(path), decoder.SampleRate())

	return &MP3Source{
		file:       f,
		decoder:    decoder,
		sampleRate: decoder.SampleRate(),
	}, nil
}

func (s *MP3Source) Read(samples []int16) (int, error) {
	buf := make([]byte, len(samples)*2)

	n, err := s.decoder.Read(buf)
	if err != nil && err != io.EOF {
		return 0, err
	}

	numSamples := n / 2
	for i := 0; i < numSamples; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}

	if n == 0 && err == io.EOF {
		return 0, io.EOF
	}

	return numSamples, nil
}

func (s *MP3Source) SampleRate() int { return s.sampleRate }
func (s *MP3Source) Channels() int   { return 2 }
func (s *MP3Source) Close() error    { return s.file.Close() }

// FLACSource reads from a FLAC file.
type FLACSource struct {
	file       *os.File
	stream     *flac.Stream
	sampleRate int
	channels   int
	bitDepth   int

	// Decoded samples waiting to be read out.
	pending []int16
}

// NewFLACSource creates a new FLAC audio source.
func NewFLACSource(path string) (*FLACSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	log.Printf("Loaded FLAC: %s (sample rate: %d Hz, channels: %d, bit depth: %d)",
		filepath.Base(path), info.SampleRate, info.NChannels, info.BitsPerSample)

	return &FLACSource{
		file:       f,
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}

func (s *FLACSource) Read(samples []int16) (int, error) {
	read := 0

	for read < len(samples) {
		if len(s.pending) == 0 {
			frame, err := s.stream.ParseNext()
			if err != nil {
				if err == io.EOF && read > 0 {
					return read, nil
				}
				return read, err
			}

			for i := 0; i < int(frame.BlockSize); i++ {
				for ch := 0; ch < s.channels; ch++ {
					s.pending = append(s.pending, s.toInt16(frame.Subframes[ch].Samples[i]))
				}
			}
		}

		n := copy(samples[read:], s.pending)
		s.pending = s.pending[n:]
		read += n
	}

	return read, nil
}

// toInt16 converts a FLAC sample at the stream's bit depth to int16.
func (s *FLACSource) toInt16(sample int32) int16 {
	switch {
	case s.bitDepth > 16:
		return int16(sample >> (s.bitDepth - 16))
	case s.bitDepth < 16:
		return int16(sample << (16 - s.bitDepth))
	default:
		return int16(sample)
	}
}

func (s *FLACSource) SampleRate() int { return s.sampleRate }
func (s *FLACSource) Channels() int   { return s.channels }
func (s *FLACSource) Close() error    { return s.file.Close() }
