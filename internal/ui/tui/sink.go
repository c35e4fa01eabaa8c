package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/pipeline"
)

type (
	resetMsg        struct{}
	errorMsg        string
	loadingMsg      bool
	profileMsg      github.Profile
	repoHeaderMsg   int
	repoListMsg     []github.Repository
	overlayMsg      pipeline.Overlay
	closeOverlayMsg struct{}
)

type readmeMsg struct {
	card   pipeline.CardID
	readme pipeline.Readme
}

// Sink forwards pipeline output to a bubbletea program. Calls made before
// Attach are dropped.
type Sink struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewSink creates a detached sink.
func NewSink() *Sink {
	return &Sink{}
}

// Attach sets the function messages are delivered through, usually
// (*tea.Program).Send.
func (s *Sink) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *Sink) emit(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (s *Sink) Reset() { s.emit(resetMsg{}) }
func (s *Sink) ShowError(msg string) { s.emit(errorMsg(msg)) }
func (s *Sink) ShowLoading(loading bool) { s.emit(loadingMsg(loading)) }
func (s *Sink) RenderProfile(p github.Profile) { s.emit(profileMsg(p)) }
func (s *Sink) RenderRepoHeader(count int) { s.emit(repoHeaderMsg(count)) }
func (s *Sink) RenderRepoList(repos []github.Repository) { s.emit(repoListMsg(repos)) }
func (s *Sink) OpenOverlay(o pipeline.Overlay) { s.emit(overlayMsg(o)) }
func (s *Sink) CloseOverlay() { s.emit(closeOverlayMsg{}) }

func (s *Sink) AttachReadme(card pipeline.CardID, readme pipeline.Readme) {
	s.emit(readmeMsg{card: card, readme: readme})
}
