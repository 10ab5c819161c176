package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// cachedRow is a stored entry as read back for comparison
type cachedRow struct {
	hash    string
	mtime   int64
	payload string
}

// entryTx batches the writes of one sync
type entryTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (c *Cache) beginTx(ctx context.Context) (*entryTx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &entryTx{ctx: ctx, tx: tx}, nil
}

// UpsertEntry inserts or replaces a parsed entry
func (t *entryTx) UpsertEntry(path, slug, hash string, mtime int64, payload []byte) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT OR REPLACE INTO entries (path, slug, content_hash, mtime, payload)
		VALUES (?, ?, ?, ?, ?)
	`, path, slug, hash, mtime, string(payload))
	return err
}

// TouchEntry records a new mtime for content that did not change
func (t *entryTx) TouchEntry(path string, mtime int64) error {
	_, err := t.tx.ExecContext(t.ctx, `UPDATE entries SET mtime = ? WHERE path = ?`, mtime, path)
	return err
}

// DeleteEntry removes an entry by path
func (t *entryTx) DeleteEntry(path string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM entries WHERE path = ?`, path)
	return err
}

// Clear removes every entry
func (t *entryTx) Clear() error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM entries`)
	return err
}

// MarkSynced stores the sync time
func (t *entryTx) MarkSynced(at time.Time) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`, at.Unix())
	return err
}

// Commit commits the transaction
func (t *entryTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *entryTx) Rollback() error {
	return t.tx.Rollback()
}
