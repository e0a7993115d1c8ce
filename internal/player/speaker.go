package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/pcm"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker initializes the process-wide speaker once, at the first
// clip's sample rate with a ~100ms buffer.
func initSpeaker(sampleRate int) error {
	speakerOnce.Do(func() {
		sr := beep.SampleRate(sampleRate)
		speakerErr = speaker.Init(sr, sr.N(time.Second/10))
	})
	return speakerErr
}

// beepSource is an active streamer handed to the speaker mixer.
type beepSource struct {
	ctrl *beep.Ctrl
}

// stop detaches the streamer from the mixer. The end callback does not fire
// for a detached streamer.
func (s *beepSource) stop() {
	speaker.Lock()
	s.ctrl.Streamer = nil
	speaker.Unlock()
}

// speakerStart plays the decoded buffer from frameOffset on the shared
// speaker. onEnd is dispatched on its own goroutine because beep invokes
// callbacks while holding the speaker lock.
func speakerStart(buf *pcm.SampleBuffer, frameOffset int, onEnd func()) (source, error) {
	if err := initSpeaker(buf.SampleRate()); err != nil {
		return nil, err
	}

	st := NewStreamer(buf, frameOffset)
	ctrl := &beep.Ctrl{
		Streamer: beep.Seq(st, beep.Callback(func() {
			go onEnd()
		})),
	}
	speaker.Play(ctrl)
	return &beepSource{ctrl: ctrl}, nil
}
