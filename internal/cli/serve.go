package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowpack/pkg/api"
	"github.com/matzehuels/flowpack/pkg/cache"
	"github.com/matzehuels/flowpack/pkg/observability"
	"github.com/matzehuels/flowpack/pkg/pipeline"
	"github.com/matzehuels/flowpack/pkg/store"
)

const defaultAddr = ":8080"

// serveCommand creates the serve command, which runs the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		noCache      bool
		maxBodyBytes int64
		resultTTL    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

  POST /v1/layout                  lay out a scene, store and return the frame
  GET  /v1/layouts/{id}            fetch a stored frame
  GET  /v1/layouts/{id}/{format}   render a stored frame (svg, txt, json)
  GET  /healthz                    liveness

Backends are chosen from the environment:

  ` + envRedisURL + `   Redis layout cache (default: local file cache)
  ` + envMongoURI + `   MongoDB result store (default: in memory)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, maxBodyBytes, resultTTL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&maxBodyBytes, "max-body", api.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&resultTTL, "result-ttl", 0, "expire stored results after this long (MongoDB only; 0 keeps them)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, maxBodyBytes int64, resultTTL time.Duration) error {
	cc, err := c.serveCache(ctx, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, resultTTL)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	if c.Logger.GetLevel() <= log.DebugLevel {
		observability.RegisterLogHooks(c.Logger)
		defer observability.Reset()
	}

	srv := api.New(runner, st, c.Logger, api.WithMaxBodyBytes(maxBodyBytes))
	return srv.ListenAndServe(ctx, addr)
}

// serveCache returns the Redis cache when configured, and the local cache
// otherwise.
func (c *CLI) serveCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	url := os.Getenv(envRedisURL)
	if url == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	c.Logger.Info("using redis cache")
	return rc, nil
}

// serveStore returns the MongoDB store when configured, and an in-memory
// store otherwise.
func (c *CLI) serveStore(ctx context.Context, ttl time.Duration) (store.Store, error) {
	uri := os.Getenv(envMongoURI)
	if uri == "" {
		c.Logger.Warn("results are kept in memory; set " + envMongoURI + " to persist them")
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, uri, store.MongoOptions{TTL: ttl})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using mongodb store", "ttl", ttl)
	return st, nil
}
