package pipeline

import (
	"sync"

	"github.com/raphi011/ghv/internal/github"
)

// Card is a rendered repository with its README, once attached.
type Card struct {
	ID         CardID            `json:"id" yaml:"id"`
	Repository github.Repository `json:"repository" yaml:"repository"`
	Readme     *Readme           `json:"readme,omitempty" yaml:"readme,omitempty"`
}

// Snapshot is the page a Recorder has built so far. TotalRepos is nil
// while the repository section is hidden.
type Snapshot struct {
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	Loading    bool            `json:"-" yaml:"-"`
	Profile    *github.Profile `json:"profile,omitempty" yaml:"profile,omitempty"`
	TotalRepos *int            `json:"total_repos,omitempty" yaml:"total_repos,omitempty"`
	Cards      []Card          `json:"repositories,omitempty" yaml:"repositories,omitempty"`
	Overlay    *Overlay        `json:"overlay,omitempty" yaml:"overlay,omitempty"`
}

// Recorder is a Sink that keeps every call in memory.
type Recorder struct {
	mu    sync.Mutex
	calls []string
	snap  Snapshot
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Calls returns the names of the sink methods called, in order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Snapshot returns a copy of the current page.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.snap
	if len(r.snap.Cards) > 0 {
		s.Cards = make([]Card, len(r.snap.Cards))
		copy(s.Cards, r.snap.Cards)
	}
	return s
}

func (r *Recorder) record(name string, fn func(s *Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	fn(&r.snap)
}

func (r *Recorder) Reset() {
	r.record("Reset", func(s *Snapshot) { *s = Snapshot{Loading: s.Loading} })
}

func (r *Recorder) ShowError(msg string) {
	r.record("ShowError", func(s *Snapshot) { *s = Snapshot{Error: msg} })
}

func (r *Recorder) ShowLoading(loading bool) {
	r.record("ShowLoading", func(s *Snapshot) { s.Loading = loading })
}

func (r *Recorder) RenderProfile(p github.Profile) {
	r.record("RenderProfile", func(s *Snapshot) { s.Profile = &p })
}

func (r *Recorder) RenderRepoHeader(count int) {
	r.record("RenderRepoHeader", func(s *Snapshot) { s.TotalRepos = &count })
}

func (r *Recorder) RenderRepoList(repos []github.Repository) {
	r.record("RenderRepoList", func(s *Snapshot) {
		s.Cards = make([]Card, len(repos))
		for i, repo := range repos {
			s.Cards[i] = Card{ID: CardID(i), Repository: repo}
		}
	})
}

func (r *Recorder) AttachReadme(card CardID, readme Readme) {
	r.record("AttachReadme", func(s *Snapshot) {
		if int(card) < 0 || int(card) >= len(s.Cards) {
			return
		}
		s.Cards[card].Readme = &readme
	})
}

func (r *Recorder) OpenOverlay(o Overlay) {
	r.record("OpenOverlay", func(s *Snapshot) { s.Overlay = &o })
}

func (r *Recorder) CloseOverlay() {
	r.record("CloseOverlay", func(s *Snapshot) { s.Overlay = nil })
}
