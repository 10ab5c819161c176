package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"folio/internal/adapters/filesystem"
	"folio/internal/domain"
	"folio/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Source is the repository a Cache sits in front of
type Source interface {
	ports.ContentRepository
	ParseEntry(path string, source []byte) (domain.Entry, error)
	Policy() filesystem.MalformedPolicy
}

// Option configures a Cache
type Option func(*Cache)

// WithPath stores the database at path instead of the XDG data directory
func WithPath(path string) Option {
	return func(c *Cache) {
		if path != "" {
			c.dbPath = path
		}
	}
}

// WithLogger overrides slog.Default
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// Cache implements ports.IndexCache using SQLite. Parsed entries are stored
// as JSON keyed by absolute file path together with the file's mtime and
// content hash.
type Cache struct {
	db     *sql.DB
	src    Source
	dbPath string
	logger *slog.Logger
	mu     sync.Mutex
}

// Ensure Cache implements IndexCache
var _ ports.IndexCache = (*Cache)(nil)

// NewCache creates a cache in front of src. Call Open before use.
func NewCache(src Source, opts ...Option) *Cache {
	c := &Cache{
		src:    src,
		dbPath: databasePath(src.Root()),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open creates the database and schema. A cache built for another root or
// schema version is cleared.
func (c *Cache) Open(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(c.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", c.dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db

	_, err = db.ExecContext(ctx, `
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS entries (
			path TEXT PRIMARY KEY,
			slug TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			mtime INTEGER NOT NULL,
			payload TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_slug ON entries(slug);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if c.NeedsFullRebuild() {
		if _, err := db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
			db.Close()
			return fmt.Errorf("failed to reset cache: %w", err)
		}
	}

	if err := c.updateMeta(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the database file location
func (c *Cache) Path() string { return c.dbPath }

// NeedsFullRebuild returns true if the stored schema or root differ from this cache's
func (c *Cache) NeedsFullRebuild() bool {
	var version, rootHash string

	c.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	c.db.QueryRow("SELECT value FROM meta WHERE key = 'root_hash'").Scan(&rootHash)

	return version != schemaVersion || rootHash != hashRoot(c.src.Root())
}

// databasePath returns the path for the SQLite database
func databasePath(root string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "folio", hashRoot(root)+".db")
}

// hashRoot returns a short hash of the content root
func hashRoot(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

func hashContent(source []byte) string {
	h := sha256.Sum256(source)
	return hex.EncodeToString(h[:])
}

// updateMeta updates the schema version and root hash
func (c *Cache) updateMeta(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('root_hash', ?);
	`, schemaVersion, hashRoot(c.src.Root()))
	return err
}

// Root returns the content root of the wrapped repository
func (c *Cache) Root() string { return c.src.Root() }

// Scan delegates to the wrapped repository
func (c *Cache) Scan(ctx context.Context) ([]string, error) { return c.src.Scan(ctx) }

// LoadEntry delegates to the wrapped repository; single lookups bypass the cache
func (c *Cache) LoadEntry(ctx context.Context, path string) (domain.Entry, error) {
	return c.src.LoadEntry(ctx, path)
}

// ReadBody delegates to the wrapped repository
func (c *Cache) ReadBody(ctx context.Context, path string) ([]byte, error) {
	return c.src.ReadBody(ctx, path)
}

// ReadSource delegates to the wrapped repository
func (c *Cache) ReadSource(ctx context.Context, path string) ([]byte, error) {
	return c.src.ReadSource(ctx, path)
}

// LoadIndex syncs incrementally and returns the entries newest first
func (c *Cache) LoadIndex(ctx context.Context) ([]domain.Entry, error) {
	entries, _, err := c.sync(ctx, false)
	return entries, err
}
