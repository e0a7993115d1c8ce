// Package pcm decodes raw 16-bit little-endian PCM bytes into normalized
// floating-point sample buffers.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

// Default audio format produced by the speech synthesis service.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
	BitsPerSample     = 16
	bytesPerSample    = BitsPerSample / 8
)

// ErrMalformedAudio is returned when the raw byte length is not a whole
// number of 16-bit frames.
var ErrMalformedAudio = errors.New("malformed pcm audio")

// SampleBuffer holds decoded audio: float64 samples in [-1.0, 1.0] with a
// fixed sample rate and channel count. Buffers are created once by Decode
// and never mutated afterwards.
type SampleBuffer struct {
	buf *audio.FloatBuffer
}

// Decode interprets raw as channel-interleaved signed 16-bit little-endian
// PCM and returns the normalized samples. The sample rate and channel count
// are taken as declared; no resampling or remixing happens here.
//
// Normalization is asymmetric: each int16 is divided by 32768, so -32768
// maps to -1.0 and 32767 maps to ~0.99997.
func Decode(raw []byte, sampleRate, channels int) (*SampleBuffer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: invalid format %d Hz / %d ch", ErrMalformedAudio, sampleRate, channels)
	}
	if len(raw)%(bytesPerSample*channels) != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrMalformedAudio, len(raw), bytesPerSample*channels)
	}

	data := make([]float64, len(raw)/bytesPerSample)
	for i := range data {
		s := int16(binary.LittleEndian.Uint16(raw[i*bytesPerSample:]))
		data[i] = float64(s) / 32768.0
	}

	return &SampleBuffer{
		buf: &audio.FloatBuffer{
			Data: data,
			Format: &audio.Format{
				SampleRate:  sampleRate,
				NumChannels: channels,
			},
		},
	}, nil
}

// SampleRate returns the declared sample rate in Hz.
func (b *SampleBuffer) SampleRate() int {
	return b.buf.Format.SampleRate
}

// Channels returns the declared channel count.
func (b *SampleBuffer) Channels() int {
	return b.buf.Format.NumChannels
}

// NumFrames returns the number of frames (samples per channel).
func (b *SampleBuffer) NumFrames() int {
	return len(b.buf.Data) / b.buf.Format.NumChannels
}

// Sample returns the normalized sample for frame i, channel c.
func (b *SampleBuffer) Sample(i, c int) float64 {
	return b.buf.Data[i*b.buf.Format.NumChannels+c]
}

// Duration returns the playback length of the buffer.
func (b *SampleBuffer) Duration() time.Duration {
	frames := b.NumFrames()
	return time.Duration(frames) * time.Second / time.Duration(b.buf.Format.SampleRate)
}
