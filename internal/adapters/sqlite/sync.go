package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"folio/internal/adapters/filesystem"
	"folio/internal/domain"
	"folio/internal/logfields"
)

// SyncFull clears the cache and re-parses every file
func (c *Cache) SyncFull(ctx context.Context) (*domain.SyncStats, error) {
	_, stats, err := c.sync(ctx, true)
	return stats, err
}

// SyncIncremental re-parses only files whose content changed since the last sync
func (c *Cache) SyncIncremental(ctx context.Context) (*domain.SyncStats, error) {
	_, stats, err := c.sync(ctx, false)
	return stats, err
}

// LastSync returns the time of the last successful sync, zero if none
func (c *Cache) LastSync() time.Time {
	var unix int64
	if err := c.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&unix); err != nil {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}

func (c *Cache) loadRows(ctx context.Context) (map[string]cachedRow, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT path, content_hash, mtime, payload FROM entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]cachedRow)
	for rows.Next() {
		var path string
		var row cachedRow
		if err := rows.Scan(&path, &row.hash, &row.mtime, &row.payload); err != nil {
			return nil, err
		}
		existing[path] = row
	}
	return existing, rows.Err()
}

// sync walks the content root once. An unchanged mtime serves the stored
// payload; otherwise the file is read and hashed and only re-parsed when the
// hash differs. Rows for files that disappeared or no longer parse are removed.
func (c *Cache) sync(ctx context.Context, full bool) ([]domain.Entry, *domain.SyncStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	stats := &domain.SyncStats{}

	paths, err := c.src.Scan(ctx)
	if err != nil {
		return nil, nil, err
	}
	stats.FilesScanned = len(paths)

	existing := map[string]cachedRow{}
	if !full {
		if existing, err = c.loadRows(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to read cache: %w", err)
		}
	}

	tx, err := c.beginTx(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if full {
		if err := tx.Clear(); err != nil {
			return nil, nil, err
		}
	}

	seen := make(map[string]bool, len(paths))
	load := func(ctx context.Context, path string) (domain.Entry, error) {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return domain.Entry{}, &domain.NotFoundError{Kind: "content file", Key: path}
			}
			return domain.Entry{}, err
		}
		mtime := info.ModTime().UnixNano()

		row, cached := existing[path]
		if cached && row.mtime == mtime {
			entry, err := decodeEntry(row.payload)
			if err == nil {
				seen[path] = true
				stats.EntriesReused++
				return entry, nil
			}
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		hash := hashContent(source)

		if cached && row.hash == hash {
			if entry, err := decodeEntry(row.payload); err == nil {
				if err := tx.TouchEntry(path, mtime); err != nil {
					return domain.Entry{}, err
				}
				seen[path] = true
				stats.EntriesReused++
				return entry, nil
			}
		}

		entry, err := c.src.ParseEntry(path, source)
		if err != nil {
			return domain.Entry{}, err
		}
		payload, err := json.Marshal(entry)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("failed to encode %s: %w", path, err)
		}
		if err := tx.UpsertEntry(path, entry.Slug, hash, mtime, payload); err != nil {
			return domain.Entry{}, err
		}

		seen[path] = true
		if cached {
			stats.EntriesUpdated++
		} else {
			stats.EntriesAdded++
		}
		return entry, nil
	}

	entries, err := filesystem.AssembleIndex(ctx, paths, load, c.src.Policy(), c.logger)
	if err != nil {
		return nil, nil, err
	}

	for path := range existing {
		if !seen[path] {
			if err := tx.DeleteEntry(path); err != nil {
				return nil, nil, err
			}
			stats.EntriesDeleted++
		}
	}

	if err := tx.MarkSynced(time.Now()); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit cache: %w", err)
	}

	stats.Skipped = len(paths) - len(entries)
	stats.Duration = time.Since(start)

	c.logger.Debug("Cache synced",
		logfields.Kind(syncKind(full)),
		logfields.Count(len(entries)),
		logfields.DurationMS(float64(stats.Duration.Microseconds())/1000))

	return entries, stats, nil
}

func syncKind(full bool) string {
	if full {
		return "full"
	}
	return "incremental"
}

func decodeEntry(payload string) (domain.Entry, error) {
	var e domain.Entry
	err := json.Unmarshal([]byte(payload), &e)
	return e, err
}
