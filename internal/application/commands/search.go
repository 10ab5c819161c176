package commands

import (
	"context"
	"sort"
	"strings"

	"folio/internal/domain"
	"folio/internal/ports"
)

// SearchResult is a published post matching a query, with a relevance score
type SearchResult struct {
	Entry       domain.Entry `json:"entry"`
	MatchedText string       `json:"matchedText"`
	Score       int          `json:"score"`
}

// SearchCommand searches published posts with fuzzy ranking
type SearchCommand struct {
	repo  ports.ContentRepository
	Query string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(repo ports.ContentRepository, query string) *SearchCommand {
	return &SearchCommand{
		repo:  repo,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if len(query) < 2 {
		return nil, nil
	}

	idx, err := loadIndex(ctx, c.repo, false)
	if err != nil {
		return nil, err
	}

	return Search(idx.Entries(), query), nil
}

// Search keeps entries whose title, summary or a tag contains query
// (case-insensitive) and ranks them by FuzzyScore
func Search(entries []domain.Entry, query string) []SearchResult {
	needle := strings.ToLower(query)
	var results []SearchResult

	for _, e := range entries {
		fields := append([]string{e.Title, e.Summary}, e.Tags...)

		best, matched := 0, ""
		for _, f := range fields {
			if !strings.Contains(strings.ToLower(f), needle) {
				continue
			}
			if s := FuzzyScore(f, query); s > best {
				best, matched = s, f
			}
		}
		if best > 0 {
			results = append(results, SearchResult{Entry: e, MatchedText: matched, Score: best})
		}
	}

	// Stable keeps newest first among equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '/' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}
