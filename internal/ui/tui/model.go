package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/ghv/internal/format"
	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/ui/styles"
)

// Searcher is the part of the pipeline the browser drives.
type Searcher interface {
	Search(ctx context.Context, input string) pipeline.Outcome
	Expand(card pipeline.CardID) error
	CloseOverlay()
}

// Options configure the browser.
type Options struct {
	// Username is searched on start when set.
	Username string
	// RateLimit reports the API quota for the footer.
	RateLimit func() (github.RateLimit, bool)
	// CopyLink writes a link to the clipboard. Defaults to the system clipboard.
	CopyLink func(string) error
}

type focus int

const (
	focusInput focus = iota
	focusCards
	focusFilter
)

type cardState struct {
	repo   github.Repository
	readme *pipeline.Readme
}

type (
	searchDoneMsg pipeline.Outcome
	expandDoneMsg struct{ err error }
	statusMsg     string
)

// Model is the bubbletea model of the browser.
type Model struct {
	ctx   context.Context
	pipe  Searcher
	opts  Options
	focus focus

	input   textinput.Model
	filter  textinput.Model
	spinner spinner.Model

	loading bool
	err     string
	profile *github.Profile
	total   *int
	cards   []cardState

	// visible holds indexes into cards that pass the filter, in order.
	visible    []int
	highlights map[int][]int
	selected   int // index into visible

	overlay *pipeline.Overlay
	scroll  int

	status string
	width  int
	height int
}

// New creates the browser model.
func New(ctx context.Context, pipe Searcher, opts Options) Model {
	if opts.CopyLink == nil {
		opts.CopyLink = clipboard.WriteAll
	}

	input := textinput.New()
	input.Placeholder = "GitHub username"
	input.CharLimit = pipeline.MaxUsernameLength + 10
	input.SetWidth(40)
	input.SetValue(opts.Username)
	input.Focus()

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter repositories"
	filter.SetWidth(40)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.PrimaryStyle

	return Model{
		ctx:     ctx,
		pipe:    pipe,
		opts:    opts,
		input:   input,
		filter:  filter,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if strings.TrimSpace(m.opts.Username) != "" {
		cmds = append(cmds, m.search(m.opts.Username))
	}
	return tea.Batch(cmds...)
}

func (m Model) search(input string) tea.Cmd {
	pipe, ctx := m.pipe, m.ctx
	return func() tea.Msg {
		return searchDoneMsg(pipe.Search(ctx, input))
	}
}

func (m Model) expand(card pipeline.CardID) tea.Cmd {
	pipe := m.pipe
	return func() tea.Msg {
		return expandDoneMsg{err: pipe.Expand(card)}
	}
}

func (m Model) closeOverlay() tea.Cmd {
	pipe := m.pipe
	return func() tea.Msg {
		pipe.CloseOverlay()
		return nil
	}
}

func (m Model) copyLink(url string) tea.Cmd {
	copyFn := m.opts.CopyLink
	url = format.SafeLink(url)
	return func() tea.Msg {
		if url == "" {
			return statusMsg("No link to copy")
		}
		if err := copyFn(url); err != nil {
			return statusMsg("Copy failed: " + err.Error())
		}
		return statusMsg("Copied " + url)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case resetMsg:
		m.err = ""
		m.profile = nil
		m.total = nil
		m.cards = nil
		m.overlay = nil
		m.status = ""
		m.clearFilter()
		return m, nil

	case errorMsg:
		m.err = string(msg)
		m.profile = nil
		m.total = nil
		m.cards = nil
		m.overlay = nil
		m.clearFilter()
		if m.focus != focusInput {
			return m, m.focusInput()
		}
		return m, nil

	case loadingMsg:
		m.loading = bool(msg)
		if m.loading {
			return m, m.spinner.Tick
		}
		return m, nil

	case profileMsg:
		p := github.Profile(msg)
		m.profile = &p
		return m, nil

	case repoHeaderMsg:
		n := int(msg)
		m.total = &n
		return m, nil

	case repoListMsg:
		m.cards = make([]cardState, len(msg))
		for i, repo := range msg {
			m.cards[i] = cardState{repo: repo}
		}
		m.applyFilter()
		return m, nil

	case readmeMsg:
		if i := int(msg.card); i >= 0 && i < len(m.cards) {
			readme := msg.readme
			m.cards[i].readme = &readme
		}
		return m, nil

	case overlayMsg:
		o := pipeline.Overlay(msg)
		m.overlay = &o
		m.scroll = 0
		return m, nil

	case closeOverlayMsg:
		m.overlay = nil
		return m, nil

	case searchDoneMsg, nil:
		return m, nil

	case expandDoneMsg:
		switch {
		case errors.Is(msg.err, pipeline.ErrNoReadme):
			m.status = "README not available yet"
		case errors.Is(msg.err, pipeline.ErrNotTruncated):
			m.status = "README already shown in full"
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.overlay != nil {
		return m.handleOverlayKey(key)
	}

	switch m.focus {
	case focusCards:
		return m.handleCardKey(key)
	case focusFilter:
		return m.handleFilterKey(msg)
	}

	switch key {
	case "enter":
		m.status = ""
		return m, m.search(m.input.Value())
	case "tab":
		if len(m.visible) > 0 {
			m.focus = focusCards
			m.input.Blur()
		}
		return m, nil
	case "esc":
		return m, tea.Quit
	}
	return m.updateInputs(msg)
}

func (m Model) handleOverlayKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q":
		return m, m.closeOverlay()
	case "j", "down":
		m.scroll++
	case "k", "up":
		m.scroll = max(m.scroll-1, 0)
	case "y":
		return m, m.copyLink(m.overlay.URL)
	}
	return m, nil
}

func (m Model) handleCardKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "enter":
		if card, ok := m.current(); ok {
			return m, m.expand(card)
		}
	case "y":
		if card, ok := m.current(); ok {
			return m, m.copyLink(m.cards[card].repo.HTMLURL)
		}
	case "/":
		m.focus = focusFilter
		return m, m.filter.Focus()
	case "tab", "esc":
		return m, m.focusInput()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearFilter()
		m.focus = focusCards
		return m, nil
	case "enter", "tab":
		m.filter.Blur()
		m.focus = focusCards
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	m.filter.Blur()
	return m.input.Focus()
}

// current returns the card id under the cursor.
func (m Model) current() (pipeline.CardID, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return 0, false
	}
	return pipeline.CardID(m.visible[m.selected]), true
}

func (m *Model) clearFilter() {
	m.filter.SetValue("")
	m.filter.Blur()
	if m.focus == focusFilter {
		m.focus = focusCards
	}
	m.applyFilter()
}

// applyFilter recomputes the visible cards from the filter text.
func (m *Model) applyFilter() {
	m.highlights = nil
	pattern := strings.TrimSpace(m.filter.Value())
	if pattern == "" {
		m.visible = make([]int, len(m.cards))
		for i := range m.cards {
			m.visible[i] = i
		}
	} else {
		matches := fuzzy.FindFrom(pattern, cardSource(m.cards))
		m.visible = make([]int, len(matches))
		m.highlights = make(map[int][]int, len(matches))
		for i, match := range matches {
			m.visible[i] = match.Index
			m.highlights[match.Index] = match.MatchedIndexes
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
	if len(m.visible) == 0 && m.focus == focusCards {
		m.focus = focusInput
		m.input.Focus()
	}
}

// cardSource matches the filter against repository names.
type cardSource []cardState

func (s cardSource) String(i int) string { return s[i].repo.Name }
func (s cardSource) Len() int { return len(s) }

func (m Model) rateLimitLine() string {
	if m.opts.RateLimit == nil {
		return ""
	}
	rl, ok := m.opts.RateLimit()
	if !ok {
		return ""
	}
	text := fmt.Sprintf("API %d/%d", rl.Remaining, rl.Limit)
	if rl.Limit > 0 && rl.Remaining*10 < rl.Limit {
		return styles.WarningStyle.Render(text + " resets " + rl.Reset.Format("15:04"))
	}
	return styles.MutedStyle.Render(text)
}
