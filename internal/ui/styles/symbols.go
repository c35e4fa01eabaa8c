package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/ghv/internal/format"
)

// Symbols holds the icon/symbol set based on nerdfont configuration
type Symbols struct {
	Star      string
	Fork      string
	Followers string
	Location  string
	Repo      string
	Readme    string
}

// Default symbols (plain Unicode)
var defaultSymbols = Symbols{
	Star:      "★",
	Fork:      "⑂",
	Followers: "◉",
	Location:  "⌖",
	Repo:      "▣",
	Readme:    "¶",
}

// Nerd font symbols
var nerdfontSymbols = Symbols{
	Star:      "\uf005", // nf-fa-star
	Fork:      "\uf126", // nf-fa-code_fork
	Followers: "\uf0c0", // nf-fa-users
	Location:  "\uf041", // nf-fa-map_marker
	Repo:      "\uf09b", // nf-fa-github
	Readme:    "\uf02d", // nf-fa-book
}

var useNerdfont bool

var currentSymbols = defaultSymbols

// SetNerdfont enables or disables nerd font symbols
func SetNerdfont(enabled bool) {
	useNerdfont = enabled
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// NerdfontEnabled returns whether nerd font symbols are enabled
func NerdfontEnabled() bool {
	return useNerdfont
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// Link renders text in style, wrapped in an OSC 8 hyperlink to url.
// Without a safe http(s) url the text is rendered plain.
func Link(text, url string, style lipgloss.Style) string {
	url = format.SafeLink(url)
	if url == "" {
		return style.Render(text)
	}
	return ansi.SetHyperlink(url) + style.Underline(true).Render(text) + ansi.ResetHyperlink()
}
