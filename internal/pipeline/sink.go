package pipeline

import (
	"strings"

	"github.com/raphi011/ghv/internal/format"
	"github.com/raphi011/ghv/internal/github"
)

// CardID addresses a rendered repository card: the index into the slice
// passed to RenderRepoList.
type CardID int

// Readme is the README state attached to a card.
type Readme struct {
	Available bool   `json:"available" yaml:"available"`
	Preview   string `json:"preview,omitempty" yaml:"preview,omitempty"`
	Full      string `json:"full,omitempty" yaml:"full,omitempty"`
	Truncated bool   `json:"truncated" yaml:"truncated"`
}

// NewReadme builds the card state for a README fetch result. Blank text
// counts as unavailable.
func NewReadme(text string, ok bool, previewLines int) Readme {
	if !ok || strings.TrimSpace(text) == "" {
		return Readme{}
	}
	preview, truncated := format.Preview(text, previewLines)
	return Readme{
		Available: true,
		Preview:   preview,
		Full:      text,
		Truncated: truncated,
	}
}

// Overlay is the expanded view of one card's README.
type Overlay struct {
	Repo string `json:"repo" yaml:"repo"`
	URL  string `json:"url" yaml:"url"`
	Text string `json:"text" yaml:"text"`
}

// Sink is a presentation surface driven by the pipeline.
//
// ShowError replaces any rendered profile and repositories with the error.
// RenderRepoList creates one card per repository; card i is repos[i].
type Sink interface {
	Reset()
	ShowError(msg string)
	ShowLoading(loading bool)
	RenderProfile(p github.Profile)
	RenderRepoHeader(count int)
	RenderRepoList(repos []github.Repository)
	AttachReadme(card CardID, readme Readme)
	OpenOverlay(o Overlay)
	CloseOverlay()
}
