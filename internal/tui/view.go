package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/player"
	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/revelation"
)

// panelWidth is the total outer width of the main panel.
// borderStyle has: border (1+1) = 2, padding (2+2) = 4, total chrome = 6.
const panelWidth = 78
const panelWidthForStyle = panelWidth - 2 // passed to borderStyle.Width()
const panelContentWidth = panelWidth - 6  // actual usable text area

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	titleText := "  REVELAÇÃO DE HOJE  "
	barTotal := panelContentWidth - len([]rune(titleText))
	barLeft := barTotal / 2
	barRight := barTotal - barLeft
	title := strings.Repeat("✧", barLeft) + titleText + strings.Repeat("✧", barRight)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(time.Now().Format("02/01/2006")))
	b.WriteString("\n\n")

	if m.Busy {
		b.WriteString(m.renderBusy())
	} else if m.Record == nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderRecord())
	}

	if m.Status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(m.Status))
	}

	if m.DebugMode || len(m.DebugEntries) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderDebugPanel())
	}

	return borderStyle.Width(panelWidthForStyle).Render(b.String())
}

func (m Model) renderBusy() string {
	var label string
	switch m.GenPhase {
	case revelation.StateGeneratingAudio:
		label = "● Gerando o áudio da sua mensagem..."
	default:
		label = "● Preparando sua mensagem..."
	}
	return busyBadge.Render(label)
}

func (m Model) renderForm() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Seu nome:"))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")

	theme := VisibleThemeAt(m.themeIdx)
	b.WriteString(labelStyle.Render("Tema:  "))
	b.WriteString(themeHintStyle.Render("◀ "))
	b.WriteString(themeSelStyle.Render(theme))
	b.WriteString(themeHintStyle.Render(" ▶"))
	b.WriteString("\n\n")

	if m.RevError != "" {
		b.WriteString(errorStyle.Render(m.RevError))
		b.WriteString("\n\n")
	}

	b.WriteString(hintStyle.Render("enter: gerar revelação  ◀ ▶: tema  esc: sair"))
	return b.String()
}

func (m Model) renderRecord() string {
	var b strings.Builder
	rec := m.Record

	b.WriteString(readyBadge.Render("✦ Revelação de hoje"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Para %s · %s", rec.PersonName, rec.Theme)))
	b.WriteString("\n\n")

	wrapped := messageStyle.Width(panelContentWidth).Render(rec.RevelationText)
	b.WriteString(wrapped)
	b.WriteString("\n\n")

	b.WriteString(m.renderPlayerRow("Mensagem", m.RevPlayer, "p"))

	if rec.PrayerText != "" {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Oração"))
		b.WriteString("\n")
		b.WriteString(messageStyle.Width(panelContentWidth).Render(rec.PrayerText))
		b.WriteString("\n\n")
		b.WriteString(m.renderPlayerRow("Oração", m.PrayerPlayer, "o"))
	}

	if m.RevError != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.RevError))
	}
	if m.PrayerError != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.PrayerError))
	}

	b.WriteString("\n\n")
	hints := "p: tocar/pausar"
	if rec.PrayerText != "" {
		hints += "  o: oração"
	} else {
		hints += "  r: gerar oração"
	}
	hints += "  s: compartilhar  c: pix  g: nova  t: tema  q: sair"
	b.WriteString(hintStyle.Render(hints))

	return b.String()
}

const progressBarWidth = 30

// renderPlayerRow renders one clip's transport line: state badge, progress
// bar, and clock. Controls are inert (rendered dimmed) when the clip has no
// playable buffer.
func (m Model) renderPlayerRow(label string, t *player.Transport, key string) string {
	if t == nil || !t.Loaded() {
		return hintStyle.Render(fmt.Sprintf("%s: sem áudio disponível", label))
	}

	elapsed := t.Elapsed()
	total := t.Duration()

	var badge string
	switch t.State() {
	case player.StatePlaying:
		badge = playingBadge.Render("❚❚")
	default:
		badge = playingBadge.Render("▶")
	}

	frac := 0.0
	if total > 0 {
		frac = float64(elapsed) / float64(total)
	}
	filled := int(math.Round(frac * progressBarWidth))
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		barTrackStyle.Render(strings.Repeat("░", progressBarWidth-filled))

	clock := hintStyle.Render(fmt.Sprintf("%s / %s", formatClock(elapsed), formatClock(total)))

	return bodyStyle.Render(fmt.Sprintf("[%s] ", key)) + badge + bodyStyle.Render("  ") + bar + bodyStyle.Render("  ") + clock
}

// formatClock renders a duration as m:ss.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

const debugPanelMaxLines = 5

// Debug table column widths. Row content must fit within panelContentWidth.
const (
	colTimeWidth     = 15
	colCategoryWidth = 10
	colSepWidth      = 3 // " │ "
	colMsgWidth      = panelContentWidth - colTimeWidth - colCategoryWidth - colSepWidth*2
)

func (m Model) renderDebugPanel() string {
	sep := debugSep.Render(" │ ")
	rule := debugRule.Render(strings.Repeat("─", panelContentWidth))

	var db strings.Builder

	db.WriteString(debugTitle.Render("Debug"))
	db.WriteString("\n")
	db.WriteString(rule)
	db.WriteString("\n")

	db.WriteString(
		debugHeader.Width(colTimeWidth).Render("TIME") +
			sep +
			debugHeader.Width(colCategoryWidth).Render("TYPE") +
			sep +
			debugHeader.Width(colMsgWidth).Render("MESSAGE"))
	db.WriteString("\n")
	db.WriteString(rule)

	entries := m.DebugEntries
	if len(entries) > debugPanelMaxLines {
		entries = entries[len(entries)-debugPanelMaxLines:]
	}
	for _, entry := range entries {
		timeStr := entry.Time
		if len(timeStr) > colTimeWidth {
			timeStr = timeStr[:colTimeWidth]
		}

		cat := entry.Category
		if len(cat) > colCategoryWidth {
			cat = cat[:colCategoryWidth]
		}

		msg := entry.Message
		if len(msg) > colMsgWidth {
			msg = msg[:colMsgWidth-3] + "..."
		}

		db.WriteString("\n")
		db.WriteString(
			debugTime.Width(colTimeWidth).Render(timeStr) +
				sep +
				debugCategory.Width(colCategoryWidth).Render(cat) +
				sep +
				debugMsg.Width(colMsgWidth).Render(msg))
	}

	return db.String()
}
