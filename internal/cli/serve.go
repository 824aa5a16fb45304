package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/internal/server"
	"github.com/matzehuels/mazegen/pkg/cache"
)

// serveCommand creates the serve command that renders mazes over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render mazes on demand over HTTP",
		Long: `Serve mazes over HTTP until interrupted.

Routes:
  GET /healthz
  GET /maze/{format}?height=&width=&seed=&merge=

Responses carry X-Maze-Seed with the seed used and X-Request-ID.
Requests with an explicit seed are cached on disk unless --no-cache is set.
Query parameters that are not given fall back to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			store := cache.NewNullCache()
			if cfg.Cache && !noCache {
				fc, err := c.openCache()
				if err != nil {
					return err
				}
				c.Logger.Debug("artifact cache", "dir", fc.Dir(), "ttl", cfg.CacheTTL.Duration)
				store = fc
			}
			defer store.Close()

			s := server.New(server.Config{
				Addr:         cfg.Addr,
				MaxCells:     cfg.MaxCells,
				WriteTimeout: cfg.WriteTimeout.Duration,
				Defaults:     c.baseOptions(),
				Runner:       c.newRunner(),
				Cache:        store,
				CacheTTL:     cfg.CacheTTL.Duration,
				Logger:       c.Logger,
			})
			printInfo("Serving mazes on %s", StyleHighlight.Render(cfg.Addr))
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
