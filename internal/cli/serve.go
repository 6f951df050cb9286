package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/apollon/pkg/cache"
	"github.com/matzehuels/apollon/pkg/observability"
	"github.com/matzehuels/apollon/pkg/pipeline"
	"github.com/matzehuels/apollon/pkg/server"
)

type serveOpts struct {
	addr     string
	cacheURL string
	noCache  bool
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve gaskets over HTTP",
		Long: `Start an HTTP server that renders gaskets on request.

  GET /gasket?c=1,1,1&depth=5&color=Blues&format=svg
  GET /schemes
  GET /healthz

Use --cache-url redis://host:6379/0 to share the cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", "", "cache backend: redis://... or none (default: file cache)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	catalog, err := c.catalog()
	if err != nil {
		return err
	}

	url := opts.cacheURL
	if url == "" {
		url = c.config.CacheURL
	}
	var store cache.Cache
	keyer := cache.NewDefaultKeyer()
	switch {
	case opts.noCache || c.config.NoCache:
		store = cache.NewNullCache()
	case url != "":
		if store, err = cache.Open(url, ""); err != nil {
			return err
		}
		keyer = cache.NewScopedKeyer(keyer, appName+":")
	default:
		if store, err = c.newCache(false); err != nil {
			return err
		}
	}
	if rc, ok := store.(*cache.RedisCache); ok {
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, requests will not be cached", "err", err)
		}
	}

	observability.NewLogHooks(logger).Install()

	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	srv := server.New(runner, logger, server.WithCatalog(catalog))
	printInfo("Listening on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}
