package commands

import (
	"context"
	"time"

	"folio/internal/domain"
	"folio/internal/ports"
)

// ScanReport summarizes one index build
type ScanReport struct {
	Root      string            `json:"root"`
	Paths     []string          `json:"paths"`
	Entries   []domain.Entry    `json:"entries"`
	Published int               `json:"published"`
	Drafts    int               `json:"drafts"`
	Tags      int               `json:"tags"`
	Stats     *domain.SyncStats `json:"stats"`
}

// ScanCommand scans the content root and builds the full index, drafts included.
// When the repository is a cache, the build goes through an incremental sync.
type ScanCommand struct {
	repo ports.ContentRepository
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(repo ports.ContentRepository) *ScanCommand {
	return &ScanCommand{repo: repo}
}

// Execute runs the scan command
func (c *ScanCommand) Execute(ctx context.Context) (*ScanReport, error) {
	start := time.Now()

	paths, err := c.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}

	var stats *domain.SyncStats
	if cache, ok := findCache(c.repo); ok {
		if stats, err = cache.SyncIncremental(ctx); err != nil {
			return nil, err
		}
	}

	entries, err := c.repo.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	if stats == nil {
		stats = &domain.SyncStats{FilesScanned: len(paths), Duration: time.Since(start)}
	}

	published := domain.Published(entries)
	return &ScanReport{
		Root:      c.repo.Root(),
		Paths:     paths,
		Entries:   entries,
		Published: len(published),
		Drafts:    len(entries) - len(published),
		Tags:      len(domain.Tags(entries)),
		Stats:     stats,
	}, nil
}

// findCache looks through decorators for an IndexCache
func findCache(repo ports.ContentRepository) (ports.IndexCache, bool) {
	for repo != nil {
		if cache, ok := repo.(ports.IndexCache); ok {
			return cache, true
		}
		w, ok := repo.(interface{ Unwrap() ports.ContentRepository })
		if !ok {
			return nil, false
		}
		repo = w.Unwrap()
	}
	return nil, false
}
