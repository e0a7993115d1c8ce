package player

import (
	"github.com/gopxl/beep"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/pcm"
)

// Streamer implements beep.StreamSeeker over a decoded mono sample buffer.
// The single channel is fanned out to both speaker channels.
type Streamer struct {
	buf *pcm.SampleBuffer
	pos int // frame index
}

// NewStreamer creates a Streamer positioned at the given frame offset.
func NewStreamer(buf *pcm.SampleBuffer, frameOffset int) *Streamer {
	if frameOffset < 0 {
		frameOffset = 0
	}
	if n := buf.NumFrames(); frameOffset > n {
		frameOffset = n
	}
	return &Streamer{buf: buf, pos: frameOffset}
}

// Stream fills samples with normalized audio and reports how many were
// produced. Returns ok=false once the buffer is exhausted.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	total := s.buf.NumFrames()
	if s.pos >= total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= total {
			return i, true
		}
		f := s.buf.Sample(s.pos, 0)
		samples[i][0] = f
		samples[i][1] = f
		s.pos++
	}
	return len(samples), true
}

// Err always returns nil; in-memory streaming cannot fail.
func (s *Streamer) Err() error { return nil }

// Len returns the total number of frames.
func (s *Streamer) Len() int { return s.buf.NumFrames() }

// Position returns the current frame position.
func (s *Streamer) Position() int { return s.pos }

// Seek moves the stream to frame p.
func (s *Streamer) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if n := s.buf.NumFrames(); p > n {
		p = n
	}
	s.pos = p
	return nil
}

var _ beep.StreamSeeker = (*Streamer)(nil)
