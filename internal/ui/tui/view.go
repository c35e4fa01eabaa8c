package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/ghv/internal/ui/static"
	"github.com/raphi011/ghv/internal/ui/styles"
)

const defaultHeight = 40

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

// render draws the whole screen.
func (m Model) render() string {
	width := m.width
	if width <= 0 {
		width = static.DefaultWidth
	}
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}

	header := m.headerView()
	footer := m.footerView()
	bodyHeight := max(height-lineCount(header)-lineCount(footer), 3)

	var body string
	if m.overlay != nil {
		body = m.overlayView(width, bodyHeight)
	} else {
		body = m.pageView(width, bodyHeight)
	}

	return header + "\n" + body + "\n" + footer
}

func (m Model) headerView() string {
	title := styles.AccentStyle.Render("ghv") + " " + styles.MutedStyle.Render("GitHub profile viewer")
	line := m.input.View()
	if m.loading {
		line += "  " + m.spinner.View() + " " + styles.InfoStyle.Render("Loading...")
	}
	out := title + "\n" + line
	if m.focus == focusFilter || m.filter.Value() != "" {
		out += "\n" + m.filter.View()
	}
	return out
}

func (m Model) footerView() string {
	var help string
	switch {
	case m.overlay != nil:
		help = "j/k scroll • y copy link • esc close"
	case m.focus == focusCards:
		help = "j/k move • enter expand • y copy link • / filter • tab search • q quit"
	case m.focus == focusFilter:
		help = "type to filter • enter done • esc clear"
	default:
		help = "enter search • tab repositories • ctrl+c quit"
	}

	parts := []string{styles.MutedStyle.Render(help)}
	if rl := m.rateLimitLine(); rl != "" {
		parts = append(parts, rl)
	}
	if m.status != "" {
		parts = append(parts, styles.InfoStyle.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

func (m Model) overlayView(width, height int) string {
	lines := strings.Split(strings.TrimRight(static.RenderOverlay(*m.overlay, width), "\n"), "\n")
	start := min(m.scroll, max(len(lines)-height, 0))
	return strings.Join(window(lines, start, height), "\n")
}

// pageView renders profile and cards, scrolled so the selected card is in view.
func (m Model) pageView(width, height int) string {
	if m.err != "" {
		return static.RenderError(m.err)
	}

	var lines []string
	add := func(block string) int {
		start := len(lines)
		lines = append(lines, strings.Split(strings.TrimRight(block, "\n"), "\n")...)
		return start
	}

	if m.profile != nil {
		add(static.RenderProfile(*m.profile, width))
	}
	if m.total != nil {
		add(static.RenderRepoHeader(*m.total))
		if len(m.cards) == 0 {
			add(styles.MutedStyle.Render(static.MsgNoRepos))
		} else if len(m.visible) == 0 {
			add(styles.MutedStyle.Render("No repositories match the filter"))
		}
	}

	selectedStart, selectedEnd := -1, -1
	for pos, idx := range m.visible {
		c := m.cards[idx]
		selected := m.focus != focusInput && pos == m.selected
		start := add(static.RenderCard(c.repo, c.readme, static.CardOptions{
			Width:      width,
			Selected:   selected,
			ExpandHint: "enter to expand",
			Highlight:  m.highlights[idx],
		}))
		if selected {
			selectedStart, selectedEnd = start, len(lines)
		}
	}

	start := 0
	if selectedStart >= 0 && selectedEnd > height {
		start = selectedEnd - height
		if selectedStart < start {
			start = selectedStart
		}
	}
	return strings.Join(window(lines, start, height), "\n")
}

func window(lines []string, start, height int) []string {
	start = min(max(start, 0), len(lines))
	end := min(start+height, len(lines))
	return lines[start:end]
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
