package domain

import "strconv"

// PostsPerPage is the default listing page size.
const PostsPerPage = 5

// Page is one slice of a paginated listing.
type Page struct {
	Posts       []Entry `json:"posts"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalPosts  int     `json:"totalPosts"`
	PageSize    int     `json:"pageSize"`
}

// TotalPages is ceil(total/pageSize). Zero entries means zero pages.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of entries. Page 1 of an empty listing is
// an empty page; any other page outside 1..TotalPages is not found.
func Paginate(entries []Entry, page, pageSize int) (Page, error) {
	if pageSize <= 0 {
		pageSize = PostsPerPage
	}
	total := TotalPages(len(entries), pageSize)
	if page < 1 || (page > total && !(page == 1 && total == 0)) {
		return Page{}, &NotFoundError{Kind: "page", Key: strconv.Itoa(page)}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(entries))
	return Page{
		Posts:       entries[start:end],
		CurrentPage: page,
		TotalPages:  total,
		TotalPosts:  len(entries),
		PageSize:    pageSize,
	}, nil
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.CurrentPage < p.TotalPages }
