package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"markdown write", fsnotify.Event{Name: "/blog/a.md", Op: fsnotify.Write}, true},
		{"mdx create", fsnotify.Event{Name: "/blog/a.mdx", Op: fsnotify.Create}, true},
		{"directory removed", fsnotify.Event{Name: "/blog/2021", Op: fsnotify.Remove}, true},
		{"image write", fsnotify.Event{Name: "/blog/a.png", Op: fsnotify.Write}, false},
		{"editor swap file", fsnotify.Event{Name: "/blog/.a.md.swp", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "/blog/a.md", Op: fsnotify.Chmod}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	root := t.TempDir()
	calls := make(chan []string, 4)

	w, err := New(root, func(_ context.Context, changed []string) {
		calls <- changed
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.SetDebounce(100 * time.Millisecond)
	w.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the root
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		path := filepath.Join(root, "post.md")
		if err := os.WriteFile(path, []byte("---\ntitle: x\n---\n"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case changed := <-calls:
		if len(changed) != 1 || filepath.Base(changed[0]) != "post.md" {
			t.Errorf("expected one changed path, got %v", changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("callback was not invoked")
	}

	select {
	case extra := <-calls:
		t.Errorf("expected a single debounced call, got another with %v", extra)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestWatcher_DottedDirectory(t *testing.T) {
	root := t.TempDir()
	calls := make(chan []string, 4)

	w, err := New(root, func(_ context.Context, changed []string) {
		calls <- changed
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.SetDebounce(50 * time.Millisecond)
	w.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	dir := filepath.Join(root, "v1.2")
	wait := func(step string) {
		t.Helper()
		select {
		case changed := <-calls:
			if !slices.Contains(changed, dir) {
				t.Errorf("%s: expected %s among %v", step, dir, changed)
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("%s: callback was not invoked", step)
		}
	}

	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	wait("create")

	if err := os.Remove(dir); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	wait("remove")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, []string) {})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Run(context.Background()); err == nil {
		t.Error("expected error for missing root")
	}
}
