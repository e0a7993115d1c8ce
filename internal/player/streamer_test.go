package player

import (
	"encoding/binary"
	"testing"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/pcm"
)

func decodeSamples(t *testing.T, samples ...int16) *pcm.SampleBuffer {
	t.Helper()
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}
	buf, err := pcm.Decode(raw, 24000, 1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return buf
}

func TestStreamerFansMonoToBothChannels(t *testing.T) {
	st := NewStreamer(decodeSamples(t, 16384, -32768), 0)

	buf := make([][2]float64, 2)
	n, ok := st.Stream(buf)
	if !ok || n != 2 {
		t.Fatalf("expected n=2 ok=true, got n=%d ok=%v", n, ok)
	}
	if buf[0][0] != 0.5 || buf[0][1] != 0.5 {
		t.Errorf("expected 0.5 on both channels, got %v", buf[0])
	}
	if buf[1][0] != -1.0 || buf[1][1] != -1.0 {
		t.Errorf("expected -1.0 on both channels, got %v", buf[1])
	}

	// Exhausted.
	n, ok = st.Stream(buf)
	if ok || n != 0 {
		t.Errorf("expected exhausted stream, got n=%d ok=%v", n, ok)
	}
}

func TestStreamerPartialFill(t *testing.T) {
	st := NewStreamer(decodeSamples(t, 1, 2, 3), 0)

	buf := make([][2]float64, 8)
	n, ok := st.Stream(buf)
	if !ok || n != 3 {
		t.Errorf("expected n=3 ok=true, got n=%d ok=%v", n, ok)
	}
}

func TestStreamerOffsetAndSeek(t *testing.T) {
	st := NewStreamer(decodeSamples(t, 1, 2, 3, 4), 2) // skip first two frames
	if st.Position() != 2 {
		t.Errorf("expected position 2, got %d", st.Position())
	}
	if st.Len() != 4 {
		t.Errorf("expected len 4, got %d", st.Len())
	}

	if err := st.Seek(100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Position() != 4 {
		t.Errorf("expected seek clamped to 4, got %d", st.Position())
	}

	if err := st.Seek(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Position() != 0 {
		t.Errorf("expected position 0, got %d", st.Position())
	}
}

func TestStreamerNegativeOffsetClamped(t *testing.T) {
	st := NewStreamer(decodeSamples(t, 1, 2), -3)
	if st.Position() != 0 {
		t.Errorf("expected position clamped to 0, got %d", st.Position())
	}
}
