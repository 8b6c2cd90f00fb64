package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dhananjayyy09/Deadlock-Prevention/internal/config"
	"github.com/dhananjayyy09/Deadlock-Prevention/internal/server"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/cache"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/history"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/source"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config string // config file path (.yaml, .yml, .json or .toml)
	addr   string // listen address override
	watch  string // snapshot file override for the live feed
}

// serveCommand creates the serve command. It runs the HTTP API with the
// configured cache and history backends, and optionally tails a snapshot
// file to feed connected websocket clients.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the deadlock analysis API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), c.Logger, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (yaml or toml)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.watch, "watch", "", "snapshot file to tail for the live feed (overrides config)")

	return cmd
}

func runServe(ctx context.Context, logger *log.Logger, opts *serveOpts) error {
	cfg := config.Default()
	if opts.config != "" {
		loaded, err := config.Load(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debugf("Loaded config %s", opts.config)
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.watch != "" {
		cfg.Source.Watch = opts.watch
	}
	if err := config.Validate(&cfg); err != nil {
		return err
	}

	server.InstallHooks()

	c, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	hist, err := openHistory(ctx, cfg)
	if err != nil {
		c.Close()
		return err
	}

	srv := server.New(cfg, server.Options{
		Logger:  logger,
		Cache:   c,
		History: hist,
	})

	if cfg.Source.Watch != "" {
		w, err := source.NewWatcher(cfg.Source.Watch)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		srv.AttachWatcher(w)
		logger.Infof("Watching %s for live updates", cfg.Source.Watch)
	}

	logger.Infof("Serving on %s", cfg.Server.Addr)
	return srv.Run(ctx)
}

// openCache builds the cache backend named by the config.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case "file", "":
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// openHistory builds the history backend named by the config.
func openHistory(ctx context.Context, cfg config.Config) (history.Store, error) {
	switch cfg.History.Backend {
	case "mongo":
		return history.NewMongoStore(ctx, history.MongoConfig{
			URI:        cfg.History.Mongo.URI,
			Database:   cfg.History.Mongo.Database,
			Collection: cfg.History.Mongo.Collection,
		})
	case "memory", "":
		return history.NewMemoryStore(cfg.History.Capacity), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}
