package revelation

import "math/rand/v2"

// SentinelTheme is the "surprise me" option. It never reaches a prompt: it
// is resolved to a concrete theme from the full catalog first.
const SentinelTheme = "Surpreenda-me"

// VisibleThemes is the list offered by the UI, sentinel last.
var VisibleThemes = []string{
	"Gratidão",
	"Esperança",
	"Fé",
	"Amor",
	"Perdão",
	"Paz",
	SentinelTheme,
}

// FullCatalog is the superset of themes used for random draws. It contains
// every visible theme plus themes only reachable through the sentinel.
var FullCatalog = []string{
	"Gratidão",
	"Esperança",
	"Fé",
	"Amor",
	"Perdão",
	"Paz",
	"Coragem",
	"Sabedoria",
	"Humildade",
	"Perseverança",
	"Alegria",
	"Confiança",
	"Renovação",
	"Propósito",
}

// ResolveTheme substitutes the sentinel with a theme drawn uniformly at
// random from the full catalog. Concrete themes pass through unchanged.
func ResolveTheme(theme string) string {
	if theme != SentinelTheme {
		return theme
	}
	return FullCatalog[rand.IntN(len(FullCatalog))]
}
