package search

import (
	"sync"

	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

// Summary describes the visible page.
type Summary struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Shown      int `json:"shown"`
	Matched    int `json:"matched"`
	Total      int `json:"total"`
}

// Pager holds the search query and current page for one table view.
type Pager struct {
	mu       sync.Mutex
	pageSize int
	page     int
	query    string
}

// NewPager returns a pager on page 1 with an empty query.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize, page: 1}
}

// Query returns the current search query.
func (p *Pager) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Page returns the current page number.
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// PageSize returns the rows per page.
func (p *Pager) PageSize() int { return p.pageSize }

// SetQuery changes the query and goes back to page 1.
func (p *Pager) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
	p.page = 1
}

// Reset goes back to page 1 without touching the query.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = 1
}

// GoTo moves to page when 1 <= page <= total pages of records under the
// current query. Anything else is ignored and reported as false.
func (p *Pager) GoTo(records []schema.InteractionRecord, page int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := TotalPages(len(Search(records, p.query)), p.pageSize)
	if page < 1 || page > total {
		return false
	}
	p.page = page
	return true
}

// Next moves one page forward.
func (p *Pager) Next(records []schema.InteractionRecord) bool {
	return p.GoTo(records, p.Page()+1)
}

// Prev moves one page back.
func (p *Pager) Prev(records []schema.InteractionRecord) bool {
	return p.GoTo(records, p.Page()-1)
}

// View applies the query and the current page to records.
func (p *Pager) View(records []schema.InteractionRecord) ([]schema.InteractionRecord, Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	matched := Search(records, p.query)
	rows := Paginate(matched, p.page, p.pageSize)
	return rows, Summary{
		Page:       p.page,
		TotalPages: TotalPages(len(matched), p.pageSize),
		Shown:      len(rows),
		Matched:    len(matched),
		Total:      len(records),
	}
}
