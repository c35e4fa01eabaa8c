package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/ghv/internal/format"
	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/ui/styles"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// Text lines shared by the terminal renderers.
const (
	MsgNoRepos           = "No public repositories found"
	MsgReadmeLoading     = "Loading README..."
	MsgReadmeUnavailable = "README not available"
)

// clean makes remote text safe for a terminal.
func clean(s string) string {
	return format.SanitizeTerminal(s)
}

// RenderError renders the error banner.
func RenderError(msg string) string {
	return styles.ErrorStyle.Render("✗ "+msg) + "\n"
}

// RenderProfile renders the profile header box.
func RenderProfile(p github.Profile, width int) string {
	sym := styles.CurrentSymbols()

	var b strings.Builder
	title := styles.Bold.Render(format.SingleLine(clean(p.DisplayName())))
	if p.Name != "" {
		title += " " + styles.MutedStyle.Render("@"+clean(p.Login))
	}
	b.WriteString(styles.Link(title, p.HTMLURL, lipgloss.NewStyle()))

	if p.Bio != "" {
		b.WriteString("\n" + styles.NormalStyle.Render(clean(p.Bio)))
	}
	if p.Location != "" {
		b.WriteString("\n" + styles.MutedStyle.Render(sym.Location+" "+format.SingleLine(clean(p.Location))))
	}

	b.WriteString("\n\n")
	b.WriteString(strings.TrimRight(RenderTable(
		[]string{"FOLLOWERS", "FOLLOWING", "REPOS"},
		[][]string{{format.Count(p.Followers), format.Count(p.Following), format.Count(p.PublicRepos)}},
	), "\n"))

	if u := format.SafeLink(p.HTMLURL); u != "" {
		b.WriteString("\n" + styles.InfoStyle.Render(u))
	}

	return styles.RoundedBorder.Width(boxWidth(width)).Render(b.String()) + "\n"
}

// RenderRepoHeader renders the repository section title with the total
// number of repositories before forks were dropped.
func RenderRepoHeader(count int) string {
	sym := styles.CurrentSymbols()
	return styles.PrimaryStyle.Bold(true).Render(fmt.Sprintf("%s Repositories (%d)", sym.Repo, count)) + "\n"
}

// CardOptions tune RenderCard.
type CardOptions struct {
	Width    int
	Selected bool
	// ExpandHint is shown under a truncated preview.
	ExpandHint string
	// Highlight marks matched rune positions of the repository name.
	Highlight []int
}

// RenderCard renders one repository card. A nil readme means the README
// is still loading.
func RenderCard(repo github.Repository, readme *pipeline.Readme, opts CardOptions) string {
	sym := styles.CurrentSymbols()

	var b strings.Builder
	name := highlight(format.SingleLine(clean(repo.Name)), opts.Highlight)
	b.WriteString(styles.Link(name, repo.HTMLURL, styles.AccentStyle))

	if repo.Description != "" {
		b.WriteString("\n" + styles.NormalStyle.Render(format.SingleLine(clean(repo.Description))))
	}

	var meta []string
	if repo.Language != "" {
		lang := format.SingleLine(clean(repo.Language))
		meta = append(meta, styles.LanguageStyle(repo.Language).Render("●")+" "+lang)
	}
	meta = append(meta,
		sym.Star+" "+format.Count(repo.Stars),
		sym.Fork+" "+format.Count(repo.Forks),
	)
	b.WriteString("\n" + styles.MutedStyle.Render(strings.Join(meta, "  ")))

	b.WriteString("\n\n")
	b.WriteString(renderReadme(readme, opts.ExpandHint))

	border := styles.CardBorder
	if opts.Selected {
		border = styles.SelectedCardBorder
	}
	return border.Width(boxWidth(opts.Width)).Render(b.String()) + "\n"
}

func renderReadme(readme *pipeline.Readme, hint string) string {
	sym := styles.CurrentSymbols()
	switch {
	case readme == nil:
		return styles.InfoStyle.Render(MsgReadmeLoading)
	case !readme.Available:
		return styles.MutedStyle.Render(MsgReadmeUnavailable)
	}

	out := styles.MutedStyle.Render(sym.Readme+" README") + "\n" + clean(readme.Preview)
	if readme.Truncated && hint != "" {
		out += "\n" + styles.InfoStyle.Render("… "+hint)
	}
	return out
}

// RenderOverlay renders the expanded README of one repository.
func RenderOverlay(o pipeline.Overlay, width int) string {
	var b strings.Builder
	b.WriteString(styles.Link(styles.Bold.Render(clean(o.Repo)), o.URL, lipgloss.NewStyle()))
	if u := format.SafeLink(o.URL); u != "" {
		b.WriteString("\n" + styles.InfoStyle.Render(u))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.TrimRight(clean(o.Text), "\n"))
	return styles.RoundedBorder.Width(boxWidth(width)).Render(b.String()) + "\n"
}

// RenderPage renders a whole recorded search.
func RenderPage(snap pipeline.Snapshot, width int) string {
	if snap.Error != "" {
		return RenderError(snap.Error)
	}

	var b strings.Builder
	if snap.Profile != nil {
		b.WriteString(RenderProfile(*snap.Profile, width))
	}
	if snap.TotalRepos != nil {
		b.WriteString("\n")
		b.WriteString(RenderRepoHeader(*snap.TotalRepos))
		if len(snap.Cards) == 0 {
			b.WriteString(styles.MutedStyle.Render(MsgNoRepos) + "\n")
		}
	}
	for _, card := range snap.Cards {
		b.WriteString(RenderCard(card.Repository, card.Readme, CardOptions{
			Width:      width,
			ExpandHint: "ghv readme " + card.Repository.FullName(),
		}))
	}
	if snap.Overlay != nil {
		b.WriteString("\n")
		b.WriteString(RenderOverlay(*snap.Overlay, width))
	}
	return b.String()
}

// highlight styles the runes of s starting at the given byte offsets.
func highlight(s string, positions []int) string {
	if len(positions) == 0 {
		return s
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}
	var b strings.Builder
	for i, r := range s {
		if marked[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func boxWidth(width int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	return max(width-2, 20)
}
