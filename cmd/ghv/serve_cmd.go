package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/ghv/internal/config"
	"github.com/raphi011/ghv/internal/log"
	"github.com/raphi011/ghv/internal/pipeline"
	"github.com/raphi011/ghv/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve profiles over HTTP",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Serve profiles as HTML pages and JSON.

Routes:
  /                      search form
  /u/<username>          profile page
  /api/users/<username>  JSON
  /healthz               cache and rate limit status

Caches are shared by all requests.`,
		Example: `  ghv serve
  ghv serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Serve.Addr
			}

			srv := web.New(client, pipeline.NewStores(cfg.Cache.TTL), pipelineOptions(cfg), log.FromContext(ctx))
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from serve.addr)")

	return cmd
}
