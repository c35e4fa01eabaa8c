package static

import (
	"io"

	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/ui/progress"
)

// Sink records a search and drives the spinner and README progress bar on
// the status writer. Call Render after the pipeline settles.
type Sink struct {
	*pipeline.Recorder

	status      io.Writer
	withReadmes bool
	spinner     *progress.Spinner
	bar         *progress.ProgressBar
}

// NewSink creates a sink reporting progress on status (usually stderr).
// withReadmes enables the README progress bar.
func NewSink(status io.Writer, withReadmes bool) *Sink {
	return &Sink{
		Recorder:    pipeline.NewRecorder(),
		status:      status,
		withReadmes: withReadmes,
		spinner:     progress.NewSpinner(status, "Fetching profile..."),
	}
}

func (s *Sink) ShowLoading(loading bool) {
	s.Recorder.ShowLoading(loading)
	if loading {
		s.spinner.Start()
	} else {
		s.spinner.Stop()
	}
}

func (s *Sink) ShowError(msg string) {
	s.spinner.Stop()
	s.Recorder.ShowError(msg)
}

func (s *Sink) RenderProfile(p github.Profile) {
	s.Recorder.RenderProfile(p)
	s.spinner.UpdateMessage("Fetching repositories...")
}

func (s *Sink) RenderRepoList(repos []github.Repository) {
	s.Recorder.RenderRepoList(repos)
	if s.withReadmes && len(repos) > 0 {
		s.bar = progress.NewProgressBar(s.status, len(repos), "Loading READMEs")
		s.bar.Start()
	}
}

func (s *Sink) AttachReadme(card pipeline.CardID, readme pipeline.Readme) {
	s.Recorder.AttachReadme(card, readme)
	if s.bar != nil {
		s.bar.Increment()
	}
}

// Render stops any progress display and writes the page to w.
func (s *Sink) Render(w io.Writer, width int) error {
	s.spinner.Stop()
	if s.bar != nil {
		s.bar.Stop()
	}
	_, err := io.WriteString(w, RenderPage(s.Snapshot(), width))
	return err
}
