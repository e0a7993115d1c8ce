// Package player owns audio playback for one clip at a time: a state
// machine driven against the real-time clock, with play, pause, and
// automatic reset when a clip finishes.
package player

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/pcm"
)

// State is the transport state for a single clip.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateEnded
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "idle"
	}
}

// source is an active audio output that can be stopped and released.
type source interface {
	stop()
}

// startFunc creates and starts a source for the decoded buffer beginning at
// frameOffset. onEnd is invoked (from any goroutine) when the source plays
// to completion.
type startFunc func(buf *pcm.SampleBuffer, frameOffset int, onEnd func()) (source, error)

// Transport drives playback of one loaded clip. Exactly one source is
// active at a time; starting while already playing is a no-op rather than
// stacking sources. Elapsed time is derived from the wall clock, not from
// the audio device, and is clamped to the clip duration.
type Transport struct {
	mu           sync.Mutex
	state        State
	buf          *pcm.SampleBuffer
	duration     time.Duration
	elapsed      time.Duration // authoritative while not playing
	startInstant time.Time     // set while playing: now - elapsed
	active       source
	gen          uint64 // invalidates end callbacks from replaced sources

	now    func() time.Time
	start  startFunc
	logger *log.Logger
}

// New creates a Transport that plays through the process-wide speaker.
func New(logger *log.Logger) *Transport {
	return &Transport{
		now:    time.Now,
		start:  speakerStart,
		logger: logger,
	}
}

// Load decodes the raw bytes and replaces the clip. Any active source is
// stopped and released and the transport resets to Idle with elapsed time
// zero. Only 16-bit mono PCM is accepted.
func (t *Transport) Load(raw []byte, sampleRate, channels int) error {
	if channels != 1 {
		return fmt.Errorf("%w: transport plays mono only, got %d channels", pcm.ErrMalformedAudio, channels)
	}
	buf, err := pcm.Decode(raw, sampleRate, channels)
	if err != nil {
		return err
	}
	d := buf.Duration()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.releaseLocked()
	t.buf = buf
	t.duration = d
	t.elapsed = 0
	t.state = StateIdle
	if t.logger != nil {
		t.logger.Printf("player: loaded clip frames=%d duration=%s", buf.NumFrames(), d.Round(time.Millisecond))
	}
	return nil
}

// Loaded reports whether a clip is available for playback.
func (t *Transport) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf != nil
}

// Play starts or resumes playback from the current elapsed offset. It is a
// no-op when already playing or when no clip is loaded.
func (t *Transport) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StatePlaying || t.buf == nil {
		return nil
	}

	offset := t.frameOffsetLocked(t.elapsed)
	t.gen++
	gen := t.gen
	src, err := t.start(t.buf, offset, func() {
		t.sourceEnded(gen)
	})
	if err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	t.active = src
	t.startInstant = t.now().Add(-t.elapsed)
	t.state = StatePlaying
	if t.logger != nil {
		t.logger.Printf("player: play offset=%s", t.elapsed.Round(time.Millisecond))
	}
	return nil
}

// Pause stops and releases the active source, retaining the elapsed time.
// It is a no-op unless playing.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StatePlaying {
		return
	}

	t.elapsed = t.clampLocked(t.now().Sub(t.startInstant))
	t.releaseLocked()
	t.state = StatePaused
	if t.logger != nil {
		t.logger.Printf("player: paused at %s", t.elapsed.Round(time.Millisecond))
	}
}

// Toggle plays when stopped and pauses when playing.
func (t *Transport) Toggle() error {
	t.mu.Lock()
	playing := t.state == StatePlaying
	t.mu.Unlock()

	if playing {
		t.Pause()
		return nil
	}
	return t.Play()
}

// State returns the current transport state.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Duration returns the loaded clip's total duration.
func (t *Transport) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// Elapsed returns the playback position, recomputed from the wall clock
// while playing and clamped to [0, duration].
func (t *Transport) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StatePlaying {
		return t.clampLocked(t.now().Sub(t.startInstant))
	}
	return t.elapsed
}

// sourceEnded handles natural completion of the source started with gen.
// Callbacks from sources that have since been stopped or replaced are
// ignored.
func (t *Transport) sourceEnded(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen || t.state != StatePlaying {
		return
	}

	elapsed := t.now().Sub(t.startInstant)
	if elapsed >= t.duration {
		// Finished for real: replay starts from the beginning.
		t.elapsed = 0
	} else {
		t.elapsed = t.clampLocked(elapsed)
	}
	t.active = nil
	t.state = StateEnded
	if t.logger != nil {
		t.logger.Printf("player: clip ended")
	}
}

// releaseLocked stops and forgets the active source, if any. Bumping gen
// makes any pending end callback from that source a no-op.
func (t *Transport) releaseLocked() {
	if t.active != nil {
		t.gen++
		t.active.stop()
		t.active = nil
	}
}

func (t *Transport) clampLocked(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > t.duration {
		return t.duration
	}
	return d
}

// frameOffsetLocked converts an elapsed time to a frame offset into the
// decoded buffer.
func (t *Transport) frameOffsetLocked(elapsed time.Duration) int {
	frames := int(elapsed * time.Duration(t.buf.SampleRate()) / time.Second)
	if n := t.buf.NumFrames(); frames > n {
		frames = n
	}
	return frames
}
