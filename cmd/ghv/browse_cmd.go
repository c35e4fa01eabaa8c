package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/ghv/internal/config"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/ui/tui"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse [username]",
		Short:   "Browse profiles interactively",
		Aliases: []string{"b"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Browse GitHub profiles in an interactive terminal UI.

Type a username and press enter to search. Results stay cached while the
browser runs, so going back to a previous user is instant.

Keys:
  enter      search / expand the selected README
  tab        switch between search box and repositories
  j/k        move between repositories, scroll an open README
  /          fuzzy filter repositories by name
  y          copy the repository link
  esc, q     close the README
  ctrl+c     quit`,
		Example: `  ghv browse
  ghv b octocat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}

			var username string
			if len(args) == 1 {
				username = args[0]
			}

			sink := tui.NewSink()
			p := pipeline.New(client, pipeline.NewStores(cfg.Cache.TTL), sink, pipelineOptions(cfg))
			model := tui.New(ctx, p, tui.Options{
				Username:  username,
				RateLimit: client.RateLimit,
			})

			// Detect color profile for stderr (handles piped output, NO_COLOR, etc.)
			profile := colorprofile.Detect(os.Stderr, os.Environ())

			program := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithOutput(os.Stderr),
				tea.WithColorProfile(profile),
			)
			sink.Attach(program.Send)

			if _, err := program.Run(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	return cmd
}
