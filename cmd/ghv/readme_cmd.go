package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/ghv/internal/config"
	"github.com/raphi011/ghv/internal/format"
	"github.com/raphi011/ghv/internal/output"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/ui/static"
)

func newReadmeCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "readme <owner/name>",
		Short:   "Show a repository's full README",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Example: `  ghv readme octocat/hello-world
  ghv readme octocat/hello-world --raw | less`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, name, err := parseRepoArg(args[0])
			if err != nil {
				return err
			}

			client, err := newClient(ctx, config.FromContext(ctx))
			if err != nil {
				return err
			}

			text, ok := client.FetchReadme(ctx, owner, name)
			if !ok || strings.TrimSpace(text) == "" {
				return fmt.Errorf("README not available for %s/%s", owner, name)
			}

			out := output.FromContext(ctx)
			if raw || !isatty.IsTerminal(os.Stdout.Fd()) {
				out.Println(strings.TrimRight(format.SanitizeTerminal(text), "\n"))
				return nil
			}
			out.Print(static.RenderOverlay(pipeline.Overlay{
				Repo: owner + "/" + name,
				URL:  "https://github.com/" + owner + "/" + name,
				Text: text,
			}, terminalWidth()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the README without a frame")

	return cmd
}

// parseRepoArg splits "owner/name".
func parseRepoArg(arg string) (owner, name string, err error) {
	owner, name, found := strings.Cut(strings.TrimSpace(arg), "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", arg)
	}
	return owner, name, nil
}
