// Package revelation sequences the two dependent generation calls (text,
// then speech) and persists the combined result keyed by calendar day.
package revelation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/store"
)

// State is the orchestrator state for a generation request.
type State int

const (
	StateIdle State = iota
	StateGeneratingText
	StateGeneratingAudio
	StateReady
	StateFailed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateGeneratingText:
		return "generating-text"
	case StateGeneratingAudio:
		return "generating-audio"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrBusy is returned when a generation request arrives while another is in
// flight. There is no cancel primitive; the busy state clears only on
// completion or failure.
var ErrBusy = errors.New("generation already in flight")

// ErrNoRevelation is returned when a prayer is requested before a
// revelation exists.
var ErrNoRevelation = errors.New("no revelation to pray over")

// Generator provides the two generation capabilities.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateSpeech(ctx context.Context, text string) ([]byte, error)
}

// RecordStore persists daily records.
type RecordStore interface {
	Put(rec *store.DailyRecord) error
}

// Orchestrator runs the text-then-speech sequence. Calls are sequential,
// never parallel: the speech call's input is the text call's output. After
// a failure, calling again re-runs both steps from scratch.
type Orchestrator struct {
	gen    Generator
	store  RecordStore
	now    func() time.Time
	logger *log.Logger

	mu      sync.Mutex
	state   State
	onState func(State)
}

// New creates an Orchestrator.
func New(gen Generator, st RecordStore, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		gen:    gen,
		store:  st,
		now:    time.Now,
		logger: logger,
	}
}

// OnStateChange registers a callback invoked on every state transition.
// Must be set before the first generation call.
func (o *Orchestrator) OnStateChange(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onState = fn
}

// State returns the current orchestrator state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	fn := o.onState
	o.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

// begin atomically claims the busy state, rejecting overlapping requests.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	if o.state == StateGeneratingText || o.state == StateGeneratingAudio {
		o.mu.Unlock()
		return ErrBusy
	}
	o.state = StateGeneratingText
	fn := o.onState
	o.mu.Unlock()
	if fn != nil {
		fn(StateGeneratingText)
	}
	return nil
}

// GenerateRevelation runs the full sequence for today's record: resolve the
// theme, generate the text, synthesize its audio, persist. Nothing is
// persisted on failure; text without audio is discarded.
func (o *Orchestrator) GenerateRevelation(ctx context.Context, name, theme string) (*store.DailyRecord, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}

	resolved := ResolveTheme(theme)
	if o.logger != nil {
		o.logger.Printf("revelation: generating for name=%q theme=%q (resolved=%q)", name, theme, resolved)
	}

	text, err := o.gen.GenerateText(ctx, RevelationPrompt(name, resolved))
	if err != nil {
		o.setState(StateFailed)
		if o.logger != nil {
			o.logger.Printf("revelation: text generation failed: %v", err)
		}
		return nil, fmt.Errorf("generate revelation text: %w", err)
	}

	o.setState(StateGeneratingAudio)
	audio, err := o.gen.GenerateSpeech(ctx, text)
	if err != nil {
		o.setState(StateFailed)
		if o.logger != nil {
			o.logger.Printf("revelation: speech synthesis failed: %v", err)
		}
		return nil, fmt.Errorf("synthesize revelation audio: %w", err)
	}

	rec := &store.DailyRecord{
		DateKey:         store.TodayKey(o.now()),
		PersonName:      name,
		Theme:           resolved,
		RevelationText:  text,
		RevelationAudio: audio,
	}
	if err := o.store.Put(rec); err != nil {
		o.setState(StateFailed)
		if o.logger != nil {
			o.logger.Printf("revelation: persist failed: %v", err)
		}
		return nil, fmt.Errorf("persist revelation: %w", err)
	}

	o.setState(StateReady)
	if o.logger != nil {
		o.logger.Printf("revelation: ready key=%s text_len=%d audio_bytes=%d", rec.DateKey, len(text), len(audio))
	}
	return rec, nil
}

// GeneratePrayer runs the same two-step sequence for the complementary
// prayer and attaches the result to the existing record. Persistence of the
// prayer is best-effort: the in-memory attach is the contract.
func (o *Orchestrator) GeneratePrayer(ctx context.Context, rec *store.DailyRecord) error {
	if rec == nil || rec.RevelationText == "" {
		return ErrNoRevelation
	}
	if err := o.begin(); err != nil {
		return err
	}

	text, err := o.gen.GenerateText(ctx, PrayerPrompt(rec.PersonName, rec.Theme))
	if err != nil {
		o.setState(StateFailed)
		if o.logger != nil {
			o.logger.Printf("prayer: text generation failed: %v", err)
		}
		return fmt.Errorf("generate prayer text: %w", err)
	}

	o.setState(StateGeneratingAudio)
	audio, err := o.gen.GenerateSpeech(ctx, text)
	if err != nil {
		o.setState(StateFailed)
		if o.logger != nil {
			o.logger.Printf("prayer: speech synthesis failed: %v", err)
		}
		return fmt.Errorf("synthesize prayer audio: %w", err)
	}

	rec.PrayerText = text
	rec.PrayerAudio = audio

	if err := o.store.Put(rec); err != nil && o.logger != nil {
		o.logger.Printf("prayer: persist failed (kept in memory): %v", err)
	}

	o.setState(StateReady)
	if o.logger != nil {
		o.logger.Printf("prayer: ready text_len=%d audio_bytes=%d", len(text), len(audio))
	}
	return nil
}
