package tui

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/clipboard"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/config"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/player"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/revelation"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/share"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/store"
)

// Localized user-facing messages. Raw errors never reach the view; they go
// to the debug log.
const (
	msgRevelationError = "Não foi possível gerar sua revelação agora. Tente novamente."
	msgPrayerError     = "Não foi possível gerar a oração agora. Tente novamente."
	msgPixCopied       = "Chave PIX copiada!"
	msgShared          = "Compartilhando..."
)

// Orchestrator is the generation surface the TUI drives.
type Orchestrator interface {
	GenerateRevelation(ctx context.Context, name, theme string) (*store.DailyRecord, error)
	GeneratePrayer(ctx context.Context, rec *store.DailyRecord) error
}

// Messages sent through the Bubble Tea update loop.

// GenerationProgressMsg mirrors orchestrator state transitions while a
// request is in flight.
type GenerationProgressMsg struct {
	State revelation.State
}

type RevelationReadyMsg struct {
	Record *store.DailyRecord
}

type RevelationErrorMsg struct {
	Err error
}

type PrayerReadyMsg struct{}

type PrayerErrorMsg struct {
	Err error
}

type progressTickMsg struct{}

// statusMsg sets the transient status line.
type statusMsg string

type statusClearMsg struct{}

// DebugEntry is a structured debug log entry.
type DebugEntry struct {
	Time     string // e.g. "11:27:53"
	Category string // e.g. "generate", "player", "share"
	Message  string // the log message
}

// DebugLogMsg carries a structured debug log entry into the TUI.
type DebugLogMsg struct {
	Entry DebugEntry
}

const maxDebugLines = 50

// Model is the Bubble Tea model for the Revelação de Hoje TUI.
type Model struct {
	Config       *config.Config
	Orch         Orchestrator
	Record       *store.DailyRecord
	RevPlayer    *player.Transport
	PrayerPlayer *player.Transport
	Logger       *log.Logger
	DebugMode    bool
	DebugEntries []DebugEntry

	Busy        bool
	GenPhase    revelation.State
	RevError    string
	PrayerError string
	Status      string

	nameInput textinput.Model
	themeIdx  int
	theme     Theme
}

// NewModel creates a new TUI model. rec is today's cached record from the
// store, nil when none exists yet.
func NewModel(cfg *config.Config, orch Orchestrator, rec *store.DailyRecord, revPlayer, prayerPlayer *player.Transport, logger *log.Logger, debug bool) Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	ti := textinput.New()
	ti.Placeholder = "Seu nome"
	ti.CharLimit = 40
	ti.Width = 28
	ti.Focus()

	theme := LoadTheme(cfg.Theme)
	applyTheme(theme)

	m := Model{
		Config:       cfg,
		Orch:         orch,
		Record:       rec,
		RevPlayer:    revPlayer,
		PrayerPlayer: prayerPlayer,
		Logger:       logger,
		DebugMode:    debug,
		nameInput:    ti,
		theme:        theme,
	}
	if rec != nil {
		m.loadClips()
	}
	return m
}

// loadClips feeds the record's audio into the transports. A decode failure
// leaves that clip unloaded; its controls stay inert.
func (m *Model) loadClips() {
	sr := m.Config.Audio.SampleRate
	ch := m.Config.Audio.Channels

	if len(m.Record.RevelationAudio) > 0 && m.RevPlayer != nil {
		if err := m.RevPlayer.Load(m.Record.RevelationAudio, sr, ch); err != nil {
			m.Logger.Printf("player: revelation clip rejected: %v", err)
		}
	}
	if len(m.Record.PrayerAudio) > 0 && m.PrayerPlayer != nil {
		if err := m.PrayerPlayer.Load(m.Record.PrayerAudio, sr, ch); err != nil {
			m.Logger.Printf("player: prayer clip rejected: %v", err)
		}
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and transitions state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case GenerationProgressMsg:
		m.GenPhase = msg.State
		return m, nil

	case RevelationReadyMsg:
		m.Busy = false
		m.GenPhase = revelation.StateReady
		m.Record = msg.Record
		m.RevError = ""
		m.PrayerError = ""
		m.loadClips()
		return m, nil

	case RevelationErrorMsg:
		m.Busy = false
		m.GenPhase = revelation.StateFailed
		m.RevError = msgRevelationError
		m.Logger.Printf("generate: revelation error: %v", msg.Err)
		return m, nil

	case PrayerReadyMsg:
		m.Busy = false
		m.GenPhase = revelation.StateReady
		m.PrayerError = ""
		m.loadClips()
		return m, nil

	case PrayerErrorMsg:
		m.Busy = false
		m.GenPhase = revelation.StateFailed
		m.PrayerError = msgPrayerError
		m.Logger.Printf("generate: prayer error: %v", msg.Err)
		return m, nil

	case progressTickMsg:
		if m.anyPlaying() {
			return m, progressTickCmd()
		}
		return m, nil

	case statusMsg:
		m.Status = string(msg)
		return m, scheduleStatusClear()

	case statusClearMsg:
		m.Status = ""
		return m, nil

	case DebugLogMsg:
		m.DebugEntries = append(m.DebugEntries, msg.Entry)
		if len(m.DebugEntries) > maxDebugLines {
			m.DebugEntries = m.DebugEntries[len(m.DebugEntries)-maxDebugLines:]
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The initiating controls stay disabled while a generation is in
	// flight; only quit works.
	if m.Busy {
		return m, nil
	}

	if m.Record == nil {
		return m.handleFormKey(msg)
	}
	return m.handleRecordKey(msg)
}

// handleFormKey drives the name/theme form. Printable keys go to the name
// input, so form-level shortcuts use non-printable keys only.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.nameInput.Value()
		if name == "" {
			return m, nil
		}
		theme := VisibleThemeAt(m.themeIdx)
		m.Busy = true
		m.GenPhase = revelation.StateGeneratingText
		m.RevError = ""
		return m, m.generateRevelationCmd(name, theme)

	case "left", "shift+tab":
		m.themeIdx = (m.themeIdx + len(revelation.VisibleThemes) - 1) % len(revelation.VisibleThemes)
		return m, nil

	case "right", "tab":
		m.themeIdx = (m.themeIdx + 1) % len(revelation.VisibleThemes)
		return m, nil

	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "p":
		return m.togglePlayer(m.RevPlayer)

	case "o":
		return m.togglePlayer(m.PrayerPlayer)

	case "r":
		if m.Record.PrayerText != "" {
			return m, nil
		}
		m.Busy = true
		m.GenPhase = revelation.StateGeneratingText
		m.PrayerError = ""
		return m, m.generatePrayerCmd(m.Record)

	case "s":
		m.Status = msgShared
		return m, tea.Batch(m.shareCmd(), scheduleStatusClear())

	case "c":
		return m, m.copyPixCmd()

	case "g":
		// Back to the form; regenerating overwrites today's record.
		m.Record = nil
		m.RevError = ""
		m.PrayerError = ""
		m.nameInput.Focus()
		return m, textinput.Blink

	case "t":
		m.theme = NextTheme(m.theme.Name)
		applyTheme(m.theme)
		m.Config.Theme = m.theme.Name
		return m, nil
	}

	return m, nil
}

func (m Model) togglePlayer(t *player.Transport) (tea.Model, tea.Cmd) {
	if t == nil || !t.Loaded() {
		return m, nil
	}
	if err := t.Toggle(); err != nil {
		m.Logger.Printf("player: toggle error: %v", err)
		return m, nil
	}
	if t.State() == player.StatePlaying {
		return m, progressTickCmd()
	}
	return m, nil
}

func (m Model) anyPlaying() bool {
	if m.RevPlayer != nil && m.RevPlayer.State() == player.StatePlaying {
		return true
	}
	if m.PrayerPlayer != nil && m.PrayerPlayer.State() == player.StatePlaying {
		return true
	}
	return false
}

// VisibleThemeAt returns the visible theme at index i.
func VisibleThemeAt(i int) string {
	if i < 0 || i >= len(revelation.VisibleThemes) {
		return revelation.VisibleThemes[0]
	}
	return revelation.VisibleThemes[i]
}

func (m Model) generateRevelationCmd(name, theme string) tea.Cmd {
	orch := m.Orch
	return func() tea.Msg {
		rec, err := orch.GenerateRevelation(context.Background(), name, theme)
		if err != nil {
			return RevelationErrorMsg{Err: err}
		}
		return RevelationReadyMsg{Record: rec}
	}
}

func (m Model) generatePrayerCmd(rec *store.DailyRecord) tea.Cmd {
	orch := m.Orch
	return func() tea.Msg {
		if err := orch.GeneratePrayer(context.Background(), rec); err != nil {
			return PrayerErrorMsg{Err: err}
		}
		return PrayerReadyMsg{}
	}
}

// shareCmd exports the revelation audio as WAV and opens the share surface.
// Failures are logged, never surfaced: the text-only link is the fallback.
func (m Model) shareCmd() tea.Cmd {
	rec := m.Record
	cfg := m.Config
	logger := m.Logger
	return func() tea.Msg {
		wavPath := ""
		if len(rec.RevelationAudio) > 0 {
			path, err := share.ExportWAV(rec.RevelationAudio, cfg.Audio.SampleRate, cfg.Audio.Channels, cfg.ExportDir(), time.Now())
			if err != nil {
				logger.Printf("share: export failed, text-only fallback: %v", err)
			} else {
				wavPath = path
			}
		}
		if err := share.Share(rec.RevelationText, wavPath, logger); err != nil {
			logger.Printf("share: %v", err)
		}
		return nil
	}
}

func (m Model) copyPixCmd() tea.Cmd {
	key := m.Config.Share.PixKey
	logger := m.Logger
	return func() tea.Msg {
		if err := clipboard.CopyPix(key); err != nil {
			logger.Printf("clipboard: %v", err)
			return nil
		}
		return statusMsg(msgPixCopied)
	}
}

const progressTickInterval = 100 * time.Millisecond

func progressTickCmd() tea.Cmd {
	return tea.Tick(progressTickInterval, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func scheduleStatusClear() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}
