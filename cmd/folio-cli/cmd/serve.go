package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/adapters/httpapi"
	"folio/internal/adapters/watcher"
	"folio/internal/bootstrap"
	"folio/internal/logfields"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the post index as a JSON API",
	Long: `Serve the post index over HTTP:

  GET /health
  GET /api/posts?page=N
  GET /api/posts/{slug}
  GET /api/tags
  GET /api/tags/{tag}?page=N
  GET /api/search?q=...
  GET /metrics

The index is built before the server starts so malformed content fails
fast. With --watch, content changes resync the cache in the background.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := GetRuntime()
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if _, err := r.Sync(ctx, r.Cache != nil && r.Cache.NeedsFullRebuild()); err != nil {
			return err
		}

		addr := r.Config.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := httpapi.NewServer(addr, r.Repo,
			httpapi.WithAuthors(r.FS),
			httpapi.WithRenderer(r.Renderer),
			httpapi.WithMetrics(r.Recorder, r.Registry),
			httpapi.WithPageSize(r.Config.Site.PostsPerPage),
			httpapi.WithLogger(r.Logger),
		)

		errc := make(chan error, 2)
		go func() { errc <- srv.Start() }()

		if serveWatch {
			w, err := newContentWatcher(r)
			if err != nil {
				return err
			}
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					errc <- err
				}
			}()
		}

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		r.Logger.Info("shutting down")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	},
}

// newContentWatcher resyncs the runtime whenever content changes
func newContentWatcher(r *bootstrap.Runtime) (*watcher.Watcher, error) {
	w, err := watcher.New(r.FS.Root(), func(ctx context.Context, changed []string) {
		stats, err := r.Sync(ctx, false)
		if err != nil {
			r.Logger.Error("resync failed", logfields.Count(len(changed)), logfields.Error(err))
			return
		}
		attrs := []any{logfields.Count(len(changed))}
		if stats != nil {
			attrs = append(attrs,
				slog.Int("added", stats.EntriesAdded),
				slog.Int("updated", stats.EntriesUpdated),
				slog.Int("deleted", stats.EntriesDeleted),
				logfields.DurationMS(float64(stats.Duration.Microseconds())/1000),
			)
		}
		r.Logger.Info("content resynced", attrs...)
	})
	if err != nil {
		return nil, err
	}
	w.SetLogger(r.Logger)
	return w, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "resync when content changes")
}
