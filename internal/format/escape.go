package format

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// EscapeForDisplay maps the five HTML-significant characters (& < > " ')
// to entities so remote text is never interpreted as markup.
func EscapeForDisplay(text string) string {
	return html.EscapeString(text)
}

// SanitizeTerminal removes ANSI escape sequences and control characters
// from remote text. Newlines and tabs are kept.
func SanitizeTerminal(text string) string {
	stripped := ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return -1
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r <= 0x9f:
			// C1 controls, e.g. a lone CSI introducer
			return -1
		}
		return r
	}, stripped)
}

// SingleLine sanitizes text and collapses it onto one line.
// Used for names, bios and descriptions rendered inside fixed-width cards.
func SingleLine(text string) string {
	return strings.Join(strings.Fields(SanitizeTerminal(text)), " ")
}

// SafeLink returns u when it is an http(s) URL free of control characters,
// and "" otherwise. Remote URLs go through it before reaching a terminal.
func SafeLink(u string) string {
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "http://") {
		return ""
	}
	for _, r := range u {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			return ""
		}
	}
	return u
}
