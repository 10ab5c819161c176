// Package watcher re-runs a callback when content under the blog root changes.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"folio/internal/domain"
	"folio/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called once per debounced burst with the paths that changed.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher monitors the content root and all of its non-hidden subdirectories
type Watcher struct {
	root     string
	debounce time.Duration
	onChange ChangeFunc
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	dirs     map[string]struct{} // watched directories, owned by Run
}

// New creates a watcher for root. Run starts it.
func New(root string, onChange ChangeFunc) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content root: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		root:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		fsw:      fsw,
		logger:   slog.Default(),
		dirs:     map[string]struct{}{},
	}, nil
}

// SetDebounce overrides DefaultDebounce
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// SetLogger overrides slog.Default
func (w *Watcher) SetLogger(l *slog.Logger) { w.logger = l }

// addTree watches dir and every non-hidden directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.dirs[path] = struct{}{}
		return nil
	})
}

// forgetTree drops dir and everything below it from the watched set
func (w *Watcher) forgetTree(dir string) {
	prefix := dir + string(filepath.Separator)
	for path := range w.dirs {
		if path == dir || strings.HasPrefix(path, prefix) {
			delete(w.dirs, path)
		}
	}
}

// dirEvent reports whether event creates, removes or renames a watched
// directory, keeping the watched set current. Directory names may contain
// dots, so the file extension says nothing here.
func (w *Watcher) dirEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err != nil || !info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			return false
		}
		if err := w.addTree(event.Name); err != nil {
			w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
		}
		// Files may have landed before the directory was watched
		return true
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if _, ok := w.dirs[event.Name]; ok {
			w.forgetTree(event.Name)
			return true
		}
	}
	return false
}

// relevant reports whether an event can change the index
func relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if domain.IsContentFile(event.Name) {
		return true
	}
	// Directory removals and renames drop whole subtrees
	return filepath.Ext(event.Name) == ""
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if _, err := os.Stat(w.root); err != nil {
		return &domain.NotFoundError{Kind: "content root", Key: w.root}
	}
	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info("Watching content", logfields.Root(w.root))

	var timer *time.Timer
	var fire <-chan time.Time
	pending := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.dirEvent(event) && !relevant(event) {
				continue
			}
			w.logger.Debug("Content change", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			pending = map[string]struct{}{}
			w.onChange(ctx, changed)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", logfields.Error(err))
		}
	}
}
