package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/ghv/internal/config"
	"github.com/raphi011/ghv/internal/output"
	"github.com/raphi011/ghv/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage ghv configuration.

Config file: ~/.config/ghv/config.toml (override with GHV_CONFIG)`,
		Example: `  ghv config init          # Create default config
  ghv config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  ghv config init           # Create config
  ghv config init -f        # Overwrite existing config
  ghv config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Path()
			if err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					if !stdinIsTerminal() {
						return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
					}
					result, err := prompt.Confirm(fmt.Sprintf("Overwrite %s?", path))
					if err != nil {
						return err
					}
					if !result.Confirmed {
						return nil
					}
				}
			}

			created, err := config.Init(true)
			if err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", created)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration after defaults, config file and environment
variables are applied. The token is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := config.FromContext(ctx).Encode()
			if err != nil {
				return err
			}
			output.FromContext(ctx).Print(string(data))
			return nil
		},
	}

	return cmd
}
