package format

import "strings"

// DefaultPreviewLines is the number of README lines shown on a card.
const DefaultPreviewLines = 4

// Preview returns the first n lines of text, trimmed, and whether text has
// more lines than that. n <= 0 falls back to DefaultPreviewLines.
// A trailing newline does not count as an extra line.
func Preview(text string, n int) (string, bool) {
	if n <= 0 {
		n = DefaultPreviewLines
	}
	lines := strings.Split(strings.TrimRight(text, "\r\n"), "\n")
	if len(lines) <= n {
		return strings.TrimSpace(text), false
	}
	return strings.TrimSpace(strings.Join(lines[:n], "\n")), true
}
