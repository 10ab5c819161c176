// Package bootstrap assembles the content stack from configuration so the
// TUI, CLI and MCP binaries wire it identically.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"folio/internal/adapters/filesystem"
	"folio/internal/adapters/sqlite"
	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/logfields"
	"folio/internal/markdown"
	"folio/internal/metrics"
	"folio/internal/ports"
)

// Runtime holds the wired collaborators
type Runtime struct {
	Config   *config.Config
	Logger   *slog.Logger
	FS       *filesystem.Repository
	Cache    *sqlite.Cache // nil unless cache.enabled
	Repo     ports.ContentRepository
	Renderer *markdown.Engine
	Recorder metrics.Recorder
	Registry *prom.Registry // nil unless metrics were requested
}

// Option configures Open
type Option func(*options)

type options struct {
	metrics bool
}

// WithMetrics records index builds on a fresh Prometheus registry
func WithMetrics() Option {
	return func(o *options) { o.metrics = true }
}

// Open builds the repository stack: filesystem, then the SQLite cache when
// enabled, then metrics instrumentation.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runtime, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}

	policy, err := filesystem.ParsePolicy(cfg.Content.OnMalformed)
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewRepository(cfg.Content.Root,
		filesystem.WithAuthorsDir(cfg.Content.Authors),
		filesystem.WithPolicy(policy),
		filesystem.WithStrict(cfg.Content.Strict),
		filesystem.WithLogger(logger),
	)

	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		FS:       fs,
		Repo:     fs,
		Renderer: markdown.New(),
		Recorder: metrics.NoopRecorder{},
	}

	if cfg.Cache.Enabled {
		cache := sqlite.NewCache(fs, sqlite.WithPath(cfg.Cache.Path), sqlite.WithLogger(logger))
		if err := cache.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open index cache: %w", err)
		}
		logger.Debug("index cache opened", logfields.Path(cache.Path()))
		rt.Cache = cache
		rt.Repo = cache
	}

	if o.metrics {
		rt.Registry = prom.NewRegistry()
		rt.Recorder = metrics.NewPrometheusRecorder(rt.Registry)
		rt.Repo = metrics.Instrument(rt.Repo, rt.Recorder)
	}

	logger.Debug("content stack ready",
		logfields.Root(fs.Root()),
		slog.Bool("cache", rt.Cache != nil),
		slog.String("on_malformed", string(policy)),
	)
	return rt, nil
}

// Sync brings the cache up to date and counts the sync. Without a cache it
// rebuilds the index so malformed content surfaces the same way.
func (r *Runtime) Sync(ctx context.Context, full bool) (*domain.SyncStats, error) {
	if r.Cache == nil {
		_, err := r.Repo.LoadIndex(ctx)
		return nil, err
	}

	var (
		stats *domain.SyncStats
		err   error
		kind  = "incremental"
	)
	if full {
		kind = "full"
		stats, err = r.Cache.SyncFull(ctx)
	} else {
		stats, err = r.Cache.SyncIncremental(ctx)
	}
	if err != nil {
		return nil, err
	}
	r.Recorder.IncCacheSync(kind)
	return stats, nil
}

// Close releases the cache
func (r *Runtime) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
