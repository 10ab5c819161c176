package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/domain"
	"folio/internal/logfields"
	"folio/internal/ports"
)

// MalformedPolicy decides what LoadIndex does with a file it cannot index.
type MalformedPolicy string

const (
	// PolicyFail aborts the whole build on the first malformed file
	PolicyFail MalformedPolicy = "fail"
	// PolicySkip logs the file at WARN and leaves it out of the index
	PolicySkip MalformedPolicy = "skip"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (MalformedPolicy, error) {
	switch MalformedPolicy(strings.ToLower(s)) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicySkip:
		return PolicySkip, nil
	}
	return "", fmt.Errorf("unknown malformed content policy %q", s)
}

// Option configures a Repository
type Option func(*Repository)

// WithAuthorsDir sets where author profiles are read from
func WithAuthorsDir(dir string) Option {
	return func(r *Repository) { r.authorsDir = expandHome(dir) }
}

// WithPolicy sets the malformed content policy
func WithPolicy(p MalformedPolicy) Option {
	return func(r *Repository) { r.policy = p }
}

// WithStrict rejects front matter keys outside the known schema
func WithStrict(strict bool) Option {
	return func(r *Repository) { r.strict = strict }
}

// WithLogger overrides slog.Default
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// Repository implements ports.ContentRepository and ports.AuthorResolver on the filesystem
type Repository struct {
	root       string
	authorsDir string
	policy     MalformedPolicy
	strict     bool
	logger     *slog.Logger
}

var (
	_ ports.ContentRepository = (*Repository)(nil)
	_ ports.AuthorResolver    = (*Repository)(nil)
)

// NewRepository creates a new filesystem repository rooted at the blog content directory
func NewRepository(root string, opts ...Option) *Repository {
	r := &Repository{
		root:   expandHome(root),
		policy: PolicyFail,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if abs, err := filepath.Abs(r.root); err == nil {
		r.root = abs
	}
	return r
}

// expandHome expands a leading ~ to the home directory
func expandHome(p string) string {
	if strings.HasPrefix(p, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return p
}

func (r *Repository) Root() string { return r.root }

// Policy returns the configured malformed content policy
func (r *Repository) Policy() MalformedPolicy { return r.policy }

// Scan lists every content file under the root
func (r *Repository) Scan(ctx context.Context) ([]string, error) {
	return Scan(ctx, r.root)
}

// LoadEntry reads and parses one content file. Relative paths are resolved
// against the content root.
func (r *Repository) LoadEntry(ctx context.Context, path string) (domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return domain.Entry{}, err
	}
	abs, _, err := r.resolve(path)
	if err != nil {
		return domain.Entry{}, err
	}
	source, err := readFile(abs)
	if err != nil {
		return domain.Entry{}, err
	}
	return r.ParseEntry(abs, source)
}

// ParseEntry builds an entry from source bytes already read from path
func (r *Repository) ParseEntry(path string, source []byte) (domain.Entry, error) {
	abs, rel, err := r.resolve(path)
	if err != nil {
		return domain.Entry{}, err
	}
	p, err := parseSource(abs, source)
	if err != nil {
		return domain.Entry{}, err
	}
	if len(p.unknown) > 0 {
		if r.strict {
			return domain.Entry{}, &domain.MalformedContentError{Path: abs, Field: p.unknown[0], Reason: "is not a known front matter key"}
		}
		r.logger.Warn("Unknown front matter keys",
			logfields.Path(abs),
			slog.Any("keys", p.unknown))
	}
	return p.toEntry(abs, rel), nil
}

// LoadIndex parses every content file and returns the entries newest first
func (r *Repository) LoadIndex(ctx context.Context) ([]domain.Entry, error) {
	start := time.Now()
	paths, err := r.Scan(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := AssembleIndex(ctx, paths, r.LoadEntry, r.policy, r.logger)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Index built",
		logfields.Root(r.root),
		logfields.Count(len(entries)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return entries, nil
}

// ReadBody returns the markdown of path without its front matter
func (r *Repository) ReadBody(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, _, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	source, err := readFile(abs)
	if err != nil {
		return nil, err
	}
	_, body, err := splitSource(source)
	if err != nil {
		return source, nil
	}
	return body, nil
}

// ReadSource returns the raw content of path. Paths outside the root are not found.
func (r *Repository) ReadSource(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, _, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	return readFile(abs)
}

// resolve returns the absolute path and the slash-separated root-relative
// path of a content file. Paths outside the root are not found.
func (r *Repository) resolve(path string) (abs, rel string, err error) {
	abs = filepath.Clean(path)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.root, filepath.FromSlash(path))
	}
	rel, err = filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", &domain.NotFoundError{Kind: "content file", Key: path}
	}
	return abs, filepath.ToSlash(rel), nil
}

func readFile(path string) ([]byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Kind: "content file", Key: path}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return source, nil
}

// LoadFunc parses one content file
type LoadFunc func(ctx context.Context, rel string) (domain.Entry, error)

// AssembleIndex loads each path, applies the malformed content policy,
// rejects duplicate slugs and sorts the result newest first.
func AssembleIndex(ctx context.Context, paths []string, load LoadFunc, policy MalformedPolicy, logger *slog.Logger) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(paths))
	seen := make(map[string]string, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, err := load(ctx, path)
		if err != nil {
			if policy == PolicySkip && errors.Is(err, domain.ErrMalformedContent) {
				logger.Warn("Skipping malformed content", logfields.Path(path), logfields.Error(err))
				continue
			}
			return nil, err
		}

		if other, dup := seen[entry.Slug]; dup {
			return nil, &domain.MalformedContentError{
				Path:   path,
				Field:  "slug",
				Reason: fmt.Sprintf("%q duplicates %s", entry.Slug, other),
			}
		}
		seen[entry.Slug] = path
		entries = append(entries, entry)
	}

	domain.SortByDateDesc(entries)
	return entries, nil
}
