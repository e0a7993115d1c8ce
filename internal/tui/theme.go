package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name       string
	Primary    lipgloss.Color // title, playing badge, progress bar
	Secondary  lipgloss.Color // labels, border, key hints
	Accent     lipgloss.Color // revelation and prayer text
	Error      lipgloss.Color // error slots
	Success    lipgloss.Color // ready badge, status line
	Warning    lipgloss.Color // generating badges, debug category
	Background lipgloss.Color // panel background
	Text       lipgloss.Color // body text
	Dimmed     lipgloss.Color // hints, debug text, progress track
	Separator  lipgloss.Color // debug separator
}

var themes = map[string]Theme{
	"celestial": {
		Name:       "Celestial",
		Primary:    lipgloss.Color("#FFD54F"),
		Secondary:  lipgloss.Color("#81D4FA"),
		Accent:     lipgloss.Color("#CE93D8"),
		Error:      lipgloss.Color("#EF9A9A"),
		Success:    lipgloss.Color("#A5D6A7"),
		Warning:    lipgloss.Color("#FFB74D"),
		Background: lipgloss.Color("#101528"),
		Text:       lipgloss.Color("#ECEFF1"),
		Dimmed:     lipgloss.Color("#5C6B8A"),
		Separator:  lipgloss.Color("#2A3350"),
	},
	"sepia": {
		Name:       "Sepia",
		Primary:    lipgloss.Color("#C7522A"),
		Secondary:  lipgloss.Color("#74A892"),
		Accent:     lipgloss.Color("#D9A05B"),
		Error:      lipgloss.Color("#C7522A"),
		Success:    lipgloss.Color("#74A892"),
		Warning:    lipgloss.Color("#D97706"),
		Background: lipgloss.Color("#1A1611"),
		Text:       lipgloss.Color("#FEF9E0"),
		Dimmed:     lipgloss.Color("#6B6254"),
		Separator:  lipgloss.Color("#40392E"),
	},
	"monochrome": {
		Name:       "Monochrome",
		Primary:    lipgloss.Color("#FFFFFF"),
		Secondary:  lipgloss.Color("#CCCCCC"),
		Accent:     lipgloss.Color("#AAAAAA"),
		Error:      lipgloss.Color("#FF0000"),
		Success:    lipgloss.Color("#FFFFFF"),
		Warning:    lipgloss.Color("#CCCCCC"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#FFFFFF"),
		Dimmed:     lipgloss.Color("#888888"),
		Separator:  lipgloss.Color("#444444"),
	},
}

// themeOrder defines the fixed cycle order for theme toggling.
var themeOrder = []string{"celestial", "sepia", "monochrome"}

// LoadTheme returns the theme with the given name (case-insensitive).
// Falls back to celestial if the name is not recognized.
func LoadTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(name)]; ok {
		return t
	}
	return themes["celestial"]
}

// NextTheme returns the theme after the given one in the cycle order.
func NextTheme(current string) Theme {
	current = strings.ToLower(current)
	for i, name := range themeOrder {
		if name == current {
			next := themeOrder[(i+1)%len(themeOrder)]
			return themes[next]
		}
	}
	return themes[themeOrder[0]]
}

// Styles, repopulated by applyTheme.
var (
	titleStyle     lipgloss.Style
	borderStyle    lipgloss.Style
	labelStyle     lipgloss.Style
	messageStyle   lipgloss.Style
	bodyStyle      lipgloss.Style
	hintStyle      lipgloss.Style
	readyBadge     lipgloss.Style
	busyBadge      lipgloss.Style
	errorStyle     lipgloss.Style
	statusStyle    lipgloss.Style
	playingBadge   lipgloss.Style
	barStyle       lipgloss.Style
	barTrackStyle  lipgloss.Style
	debugTitle     lipgloss.Style
	debugRule      lipgloss.Style
	debugHeader    lipgloss.Style
	debugTime      lipgloss.Style
	debugCategory  lipgloss.Style
	debugMsg       lipgloss.Style
	debugSep       lipgloss.Style
	themeSelStyle  lipgloss.Style
	themeHintStyle lipgloss.Style
)

// applyTheme updates all TUI style variables to use the given theme's colors.
func applyTheme(t Theme) {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Background).
		MarginBottom(1)

	borderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(1, 2).
		Background(t.Background)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Secondary).
		Background(t.Background).
		Bold(true)

	messageStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Italic(true)

	bodyStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Background)

	hintStyle = lipgloss.NewStyle().
		Foreground(t.Dimmed).
		Background(t.Background)

	readyBadge = lipgloss.NewStyle().
		Foreground(t.Success).
		Background(t.Background).
		Bold(true)

	busyBadge = lipgloss.NewStyle().
		Foreground(t.Warning).
		Background(t.Background).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Background(t.Background)

	statusStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Background(t.Background)

	playingBadge = lipgloss.NewStyle().
		Foreground(t.Primary).
		Background(t.Background).
		Bold(true)

	barStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Background(t.Background)

	barTrackStyle = lipgloss.NewStyle().
		Foreground(t.Dimmed).
		Background(t.Background)

	debugTitle = lipgloss.NewStyle().
		Foreground(t.Dimmed).
		Background(t.Background).
		Bold(true)

	debugRule = lipgloss.NewStyle().
		Foreground(t.Dimmed).
		Background(t.Background)

	debugHeader = lipgloss.NewStyle().
		Foreground(t.Dimmed).
		Background(t.Background).
		Bold(true)

	debugTime = lipgloss.NewStyle().
		Foreground(t.Dimmed).
		Background(t.Background)

	debugCategory = lipgloss.NewStyle().
		Foreground(t.Warning).
		Background(t.Background)

	debugMsg = lipgloss.NewStyle().
		Foreground(t.Dimmed).
		Background(t.Background)

	debugSep = lipgloss.NewStyle().
		Foreground(t.Separator).
		Background(t.Background)

	themeSelStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true)

	themeHintStyle = lipgloss.NewStyle().
		Foreground(t.Secondary).
		Background(t.Background)
}

func init() {
	applyTheme(themes["celestial"])
}
