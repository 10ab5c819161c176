package views

import (
	"fmt"

	"folio/internal/application"
)

// Paginator tracks a cursor over a list shown one page at a time
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a new paginator. A non-positive size uses application.PostsPerPage.
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes the page size, keeping the cursor on the same item
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = application.PostsPerPage
	}
	p.pageSize = size
	p.ensureCursorInPage()
}

// PageSize returns the number of items per page
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// SetTotal sets the total number of items and clamps the cursor
func (p *Paginator) SetTotal(total int) {
	p.totalItems = max(total, 0)
	p.SetCursor(p.cursor)
}

// Cursor returns the absolute cursor position
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	if pos >= p.totalItems {
		pos = p.totalItems - 1
	}
	p.cursor = max(pos, 0)
	p.ensureCursorInPage()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor > 0 {
		p.SetCursor(p.cursor - 1)
		return true
	}
	return false
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor < p.totalItems-1 {
		p.SetCursor(p.cursor + 1)
		return true
	}
	return false
}

// VisibleRange returns the start and end indices for the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// CursorInPage returns the cursor position relative to the current page
func (p *Paginator) CursorInPage() int {
	return p.cursor - p.pageOffset
}

// TotalPages returns the number of pages, at least 1
func (p *Paginator) TotalPages() int {
	return max(application.TotalPages(p.totalItems, p.pageSize), 1)
}

// CurrentPage returns the current page number (1-based)
func (p *Paginator) CurrentPage() int {
	return p.pageOffset/p.pageSize + 1
}

// NextPage moves to the first item of the next page
func (p *Paginator) NextPage() bool {
	if p.pageOffset+p.pageSize < p.totalItems {
		p.SetCursor(p.pageOffset + p.pageSize)
		return true
	}
	return false
}

// PrevPage moves to the first item of the previous page
func (p *Paginator) PrevPage() bool {
	if p.pageOffset > 0 {
		p.SetCursor(p.pageOffset - p.pageSize)
		return true
	}
	return false
}

// Reset moves back to the first item
func (p *Paginator) Reset() {
	p.cursor = 0
	p.pageOffset = 0
}

// Label renders "page N of M"
func (p *Paginator) Label() string {
	return fmt.Sprintf("page %d of %d", p.CurrentPage(), p.TotalPages())
}

func (p *Paginator) ensureCursorInPage() {
	if p.pageSize <= 0 {
		return
	}
	p.pageOffset = (p.cursor / p.pageSize) * p.pageSize
}
