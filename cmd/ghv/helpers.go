package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/ghv/internal/cmd"
	"github.com/raphi011/ghv/internal/config"
	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/log"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/ui/static"
)

// resolveToken picks the API token: --token, then config/environment, then
// the gh CLI when api.gh_auth is set. An empty result means anonymous.
func resolveToken(ctx context.Context, cfg *config.Config) string {
	if t := strings.TrimSpace(tokenArg); t != "" {
		return t
	}
	if cfg.API.Token != "" {
		return cfg.API.Token
	}
	if !cfg.API.GHAuth {
		return ""
	}

	l := log.FromContext(ctx)
	token, err := github.TokenFromGH(ctx)
	if err != nil {
		if errors.Is(err, cmd.ErrNotInstalled) {
			l.Printf("Warning: api.gh_auth is set but gh is not installed\n")
		} else {
			l.Printf("Warning: %v\n", err)
		}
		return ""
	}
	return token
}

// newClient builds the API client from config and global flags.
func newClient(ctx context.Context, cfg *config.Config) (*github.Client, error) {
	baseURL := cfg.API.BaseURL
	if apiURL != "" {
		if err := config.ValidateBaseURL(apiURL); err != nil {
			return nil, err
		}
		baseURL = apiURL
	}

	client := github.NewClient(
		github.WithBaseURL(baseURL),
		github.WithToken(resolveToken(ctx, cfg)),
		github.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		github.WithUserAgent("ghv/"+version),
	)
	log.FromContext(ctx).Debug("api client", "base_url", client.BaseURL(), "authenticated", client.HasToken())
	return client, nil
}

// pipelineOptions maps display config onto pipeline options.
func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		MaxRepos:          cfg.Display.MaxRepos,
		PreviewLines:      cfg.Display.PreviewLines,
		ReadmeConcurrency: cfg.Display.ReadmeConcurrency,
	}
}

// terminalWidth returns the width of stdout, or the default when stdout is
// not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return static.DefaultWidth
	}
	return w
}

// stdinIsTerminal reports whether the user can answer prompts.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
