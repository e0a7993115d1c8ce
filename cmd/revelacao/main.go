package main

import (
	"flag"
	"io"
	"log"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/config"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/generator"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/player"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/revelation"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/store"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/tui"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging to stderr")
	flag.Parse()

	// Set up debug logger
	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	// Load config
	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	apiKey := config.LoadAPIKey()
	if apiKey == "" {
		log.Fatalf("no API key: set %s in the environment or in a .env file", config.APIKeyEnv)
	}

	// Warn if sending generated text over plaintext HTTP to a non-local host
	if u, err := url.Parse(cfg.Generation.BaseURL); err == nil {
		if u.Scheme == "http" && u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" && u.Hostname() != "::1" {
			log.Printf("WARNING: generation base_url uses plaintext HTTP to non-local host %q", u.Hostname())
		}
	}

	// Open the daily record store
	st, err := store.Open(cfg.DataDir())
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	// Today's record, if one was already generated
	rec, found, err := st.Get(store.TodayKey(time.Now()))
	if err != nil {
		log.Fatalf("read store: %v", err)
	}
	if !found {
		rec = nil
	}
	if rec != nil {
		dbg.Printf("store: found record for %s (name=%s theme=%s)", rec.DateKey, rec.PersonName, rec.Theme)
	}

	// Generation pipeline
	client := generator.NewClient(&cfg.Generation, apiKey, dbg)
	orch := revelation.New(client, st, dbg)

	// One transport per clip so the message and the prayer keep
	// independent positions.
	revPlayer := player.New(dbg)
	prayerPlayer := player.New(dbg)

	model := tui.NewModel(cfg, orch, rec, revPlayer, prayerPlayer, dbg, *debug)
	p := tea.NewProgram(model, tea.WithAltScreen())

	orch.OnStateChange(func(s revelation.State) {
		p.Send(tui.GenerationProgressMsg{State: s})
	})

	// When debug is enabled, redirect logger output into the TUI debug panel
	if *debug {
		dbg.SetOutput(tui.NewLogWriter(p))
	}

	if _, err := p.Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}
