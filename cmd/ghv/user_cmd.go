package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/ghv/internal/config"
	"github.com/raphi011/ghv/internal/log"
	"github.com/raphi011/ghv/internal/output"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/storage"
	"github.com/raphi011/ghv/internal/ui/prompt"
	"github.com/raphi011/ghv/internal/ui/static"
	"github.com/raphi011/ghv/internal/web"
)

func newUserCmd() *cobra.Command {
	var (
		format   string
		outFile  string
		noReadme bool
	)

	cmd := &cobra.Command{
		Use:     "user [username]",
		Short:   "Show a user's profile and repositories",
		Aliases: []string{"u"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show a GitHub user's profile and public repositories.

Forks are hidden. Each repository card shows the first lines of its README;
use 'ghv readme owner/name' for the full text.

Without a username, ghv prompts for one when stdin is a terminal.`,
		Example: `  ghv user octocat                 # Profile and repositories
  ghv u octocat --no-readme        # Skip README previews
  ghv user octocat -f json         # JSON snapshot
  ghv user octocat -f html -o octocat.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateFormat(format); err != nil {
				return err
			}

			username, err := usernameArg(args)
			if err != nil {
				return err
			}
			if username == "" {
				return nil
			}

			return runUser(cmd.Context(), username, userOptions{
				format:   format,
				outFile:  outFile,
				noReadme: noReadme,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml or html")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write output to file instead of stdout")
	cmd.Flags().BoolVar(&noReadme, "no-readme", false, "Don't fetch README previews")

	cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.ValidFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// usernameArg returns the username argument, prompting for it when none was
// given and stdin is a terminal. An empty result means the prompt was
// cancelled.
func usernameArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !stdinIsTerminal() {
		return "", fmt.Errorf("username required")
	}

	result, err := prompt.TextInput("GitHub username:", prompt.TextInputOptions{
		Placeholder: "octocat",
		CharLimit:   pipeline.MaxUsernameLength + 10,
		Validate:    pipeline.Validate,
	})
	if err != nil {
		return "", err
	}
	if result.Cancelled {
		return "", nil
	}
	return result.Value, nil
}

type userOptions struct {
	format   string
	outFile  string
	noReadme bool
}

func runUser(ctx context.Context, username string, opts userOptions) error {
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	popts := pipelineOptions(cfg)
	popts.SkipReadmes = opts.noReadme

	status := io.Writer(os.Stderr)
	if quiet {
		status = io.Discard
	}
	sink := static.NewSink(status, !opts.noReadme)
	p := pipeline.New(client, pipeline.NewStores(cfg.Cache.TTL), sink, popts)

	out := p.Search(ctx, username)
	if err := p.Wait(ctx); err != nil {
		return err
	}
	if rl, ok := client.RateLimit(); ok {
		l.Debug("rate limit", "remaining", rl.Remaining, "limit", rl.Limit, "reset", rl.Reset.Format("15:04:05"))
	}

	write := func(w io.Writer) error {
		switch opts.format {
		case output.FormatJSON, output.FormatYAML:
			return output.New(w).Encode(opts.format, sink.Snapshot())
		case "html":
			return web.WritePage(w, username, sink.Snapshot())
		default:
			width := static.DefaultWidth
			if opts.outFile == "" {
				width = terminalWidth()
			}
			return sink.Render(w, width)
		}
	}

	if opts.outFile != "" {
		if err := storage.WriteFile(opts.outFile, write); err != nil {
			return fmt.Errorf("write %s: %w", opts.outFile, err)
		}
		l.Printf("Wrote %s\n", opts.outFile)
	} else if err := write(output.FromContext(ctx).Writer()); err != nil {
		return err
	}

	if out.State == pipeline.Errored {
		if opts.outFile != "" {
			l.Printf("%s\n", sink.Snapshot().Error)
		}
		return errReported
	}
	return nil
}
