package application

import "folio/internal/domain"

// Re-export domain types for use by adapters
type (
	Entry    = domain.Entry
	Page     = domain.Page
	TagCount = domain.TagCount
)

// PostsPerPage is the listing page size used when none is configured
const PostsPerPage = domain.PostsPerPage

// TagSlug returns the URL form of a tag
func TagSlug(tag string) string {
	return domain.TagSlug(tag)
}

// FilterByTag returns the published entries carrying tag, compared by slug
func FilterByTag(entries []Entry, tag string) []Entry {
	return domain.FilterByTag(entries, tag)
}

// ByCount orders tag counts by count descending, then by tag
func ByCount(counts []TagCount) {
	domain.ByCount(counts)
}

// TotalPages returns how many pages of pageSize hold total entries
func TotalPages(total, pageSize int) int {
	return domain.TotalPages(total, pageSize)
}
