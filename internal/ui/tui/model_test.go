package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/pipeline"
)

type fakeSearcher struct {
	mu       sync.Mutex
	searches []string
	expanded []pipeline.CardID
	closed   int
	expandFn func(pipeline.CardID) error
}

func (f *fakeSearcher) Search(_ context.Context, input string) pipeline.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, input)
	return pipeline.Outcome{State: pipeline.Settled}
}

func (f *fakeSearcher) Expand(card pipeline.CardID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expanded = append(f.expanded, card)
	if f.expandFn != nil {
		return f.expandFn(card)
	}
	return nil
}

func (f *fakeSearcher) CloseOverlay() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		r := []rune(s)[0]
		return tea.KeyPressMsg{Code: r, Text: s}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	um, ok := updated.(Model)
	require.True(t, ok)
	return um, cmd
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, key(k))
	}
	return m, cmd
}

func loaded(t *testing.T, f *fakeSearcher, opts Options) Model {
	t.Helper()
	m := New(context.Background(), f, opts)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	m, _ = update(t, m, resetMsg{})
	m, _ = update(t, m, profileMsg(github.Profile{Login: "octocat", Name: "The Octocat", Followers: 1500}))
	m, _ = update(t, m, repoHeaderMsg(4))
	m, _ = update(t, m, repoListMsg([]github.Repository{
		{Name: "hello-world", Owner: "octocat", HTMLURL: "https://github.com/octocat/hello-world"},
		{Name: "spoon-knife", Owner: "octocat", HTMLURL: "https://github.com/octocat/spoon-knife"},
		{Name: "linguist", Owner: "octocat", HTMLURL: "https://github.com/octocat/linguist"},
	}))
	return m
}

func TestModel_EnterSearches(t *testing.T) {
	t.Parallel()
	f := &fakeSearcher{}
	m := New(context.Background(), f, Options{})

	m, _ = press(t, m, "o", "c", "t", "o")
	assert.Equal(t, "octo", m.input.Value())

	_, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, searchDoneMsg{}, msg)
	assert.Equal(t, []string{"octo"}, f.searches)
}

func TestModel_InitWithUsername(t *testing.T) {
	t.Parallel()
	m := New(context.Background(), &fakeSearcher{}, Options{Username: "octocat"})
	assert.Equal(t, "octocat", m.input.Value())
	assert.NotNil(t, m.Init())
}

func TestModel_SinkMessagesBuildPage(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakeSearcher{}, Options{})

	readme := pipeline.NewReadme("# Hello\nworld", true, 4)
	m, _ = update(t, m, readmeMsg{card: 0, readme: readme})
	m, _ = update(t, m, readmeMsg{card: 7, readme: readme})

	require.Len(t, m.cards, 3)
	require.NotNil(t, m.cards[0].readme)
	assert.Nil(t, m.cards[1].readme)

	view := ansi.Strip(m.render())
	assert.Contains(t, view, "The Octocat")
	assert.Contains(t, view, "Repositories (4)")
	assert.Contains(t, view, "hello-world")
	assert.Contains(t, view, "# Hello")
}

func TestModel_LoadingShowsSpinner(t *testing.T) {
	t.Parallel()
	m := New(context.Background(), &fakeSearcher{}, Options{})

	m, cmd := update(t, m, loadingMsg(true))
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.render(), "Loading...")

	m, _ = update(t, m, loadingMsg(false))
	assert.NotContains(t, m.render(), "Loading...")
}

func TestModel_ErrorClearsPage(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakeSearcher{}, Options{})
	m, _ = press(t, m, "tab")
	require.Equal(t, focusCards, m.focus)

	m, _ = update(t, m, errorMsg(`User "ghost" not found on GitHub`))
	assert.Nil(t, m.profile)
	assert.Empty(t, m.cards)
	assert.Equal(t, focusInput, m.focus)
	assert.Contains(t, ansi.Strip(m.render()), `User "ghost" not found on GitHub`)
}

func TestModel_CardNavigationAndExpand(t *testing.T) {
	t.Parallel()
	f := &fakeSearcher{}
	m := loaded(t, f, Options{})

	m, _ = press(t, m, "tab", "j", "j", "j", "k")
	assert.Equal(t, focusCards, m.focus)
	assert.Equal(t, 1, m.selected)

	_, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []pipeline.CardID{1}, f.expanded)
}

func TestModel_ExpandWithoutReadmeSetsStatus(t *testing.T) {
	t.Parallel()
	f := &fakeSearcher{expandFn: func(pipeline.CardID) error { return pipeline.ErrNoReadme }}
	m := loaded(t, f, Options{})

	m, cmd := press(t, m, "tab", "enter")
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "README not available yet", m.status)
}

func TestModel_Overlay(t *testing.T) {
	t.Parallel()
	f := &fakeSearcher{}
	m := loaded(t, f, Options{})

	m, _ = update(t, m, overlayMsg(pipeline.Overlay{
		Repo: "octocat/hello-world",
		URL:  "https://github.com/octocat/hello-world",
		Text: "line 1\nline 2\nline 7",
	}))
	require.NotNil(t, m.overlay)
	view := ansi.Strip(m.render())
	assert.Contains(t, view, "line 7")
	assert.NotContains(t, view, "spoon-knife")

	m, _ = press(t, m, "j", "j", "k")
	assert.Equal(t, 1, m.scroll)

	_, cmd := press(t, m, "esc")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 1, f.closed)

	m, _ = update(t, m, closeOverlayMsg{})
	assert.Nil(t, m.overlay)
}

func TestModel_CopyLink(t *testing.T) {
	t.Parallel()
	var copied string
	m := loaded(t, &fakeSearcher{}, Options{CopyLink: func(s string) error {
		copied = s
		return nil
	}})

	m, cmd := press(t, m, "tab", "j", "y")
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "https://github.com/octocat/spoon-knife", copied)
	assert.Contains(t, m.status, "Copied")
}

func TestModel_CopyLinkRefusesUnsafeURL(t *testing.T) {
	t.Parallel()
	called := false
	m := New(context.Background(), &fakeSearcher{}, Options{CopyLink: func(string) error {
		called = true
		return nil
	}})

	msg := m.copyLink("https://github.com/x\x1b]0;pwned\x07")()
	assert.False(t, called)
	assert.Equal(t, statusMsg("No link to copy"), msg)
}

func TestModel_FuzzyFilter(t *testing.T) {
	t.Parallel()
	f := &fakeSearcher{}
	m := loaded(t, f, Options{})

	m, _ = press(t, m, "tab", "/", "l", "n", "g")
	assert.Equal(t, focusFilter, m.focus)
	require.Equal(t, []int{2}, m.visible)
	assert.NotEmpty(t, m.highlights[2])

	m, _ = press(t, m, "enter")
	assert.Equal(t, focusCards, m.focus)

	_, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []pipeline.CardID{2}, f.expanded)

	m, _ = press(t, m, "/", "esc")
	assert.Len(t, m.visible, 3)
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakeSearcher{}, Options{})

	_, cmd := press(t, m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_RateLimitFooter(t *testing.T) {
	t.Parallel()
	m := New(context.Background(), &fakeSearcher{}, Options{
		RateLimit: func() (github.RateLimit, bool) {
			return github.RateLimit{Limit: 60, Remaining: 3, Reset: time.Date(2026, 1, 1, 13, 30, 0, 0, time.Local)}, true
		},
	})
	view := ansi.Strip(m.render())
	assert.Contains(t, view, "API 3/60")
	assert.Contains(t, view, "resets 13:30")
}

func TestSink_ForwardsAfterAttach(t *testing.T) {
	t.Parallel()
	s := NewSink()
	s.ShowLoading(true)

	var got []tea.Msg
	s.Attach(func(msg tea.Msg) { got = append(got, msg) })
	s.Reset()
	s.RenderRepoHeader(3)
	s.AttachReadme(1, pipeline.Readme{Available: true})
	s.CloseOverlay()

	require.Len(t, got, 4)
	assert.Equal(t, resetMsg{}, got[0])
	assert.Equal(t, repoHeaderMsg(3), got[1])
	assert.Equal(t, readmeMsg{card: 1, readme: pipeline.Readme{Available: true}}, got[2])
	assert.Equal(t, closeOverlayMsg{}, got[3])
}
