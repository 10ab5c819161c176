package ports

import (
	"context"

	"folio/internal/domain"
)

// IndexCache persists parsed entries between runs so unchanged files are not re-parsed.
// A cache is itself a ContentRepository over the repository it wraps.
type IndexCache interface {
	ContentRepository

	// Lifecycle
	Open(ctx context.Context) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental(ctx context.Context) (*domain.SyncStats, error)
	SyncFull(ctx context.Context) (*domain.SyncStats, error)
}
