// Package search filters and paginates an in-memory record set.
package search

import (
	"strings"

	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 25

// Search returns the records where any searchable field contains query,
// ignoring case. A blank query returns records unchanged. Order is preserved.
func Search(records []schema.InteractionRecord, query string) []schema.InteractionRecord {
	if strings.TrimSpace(query) == "" {
		return records
	}
	q := strings.ToLower(query)

	out := make([]schema.InteractionRecord, 0, len(records))
	for _, r := range records {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r schema.InteractionRecord, lowerQuery string) bool {
	for _, field := range r.SearchableFields() {
		if strings.Contains(strings.ToLower(field), lowerQuery) {
			return true
		}
	}
	return false
}

// Paginate returns the 1-based page of records. Pages outside the data,
// including page < 1, come back empty.
func Paginate(records []schema.InteractionRecord, page, pageSize int) []schema.InteractionRecord {
	if page < 1 || pageSize <= 0 {
		return []schema.InteractionRecord{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []schema.InteractionRecord{}
	}
	end := min(start+pageSize, len(records))
	return records[start:end]
}

// TotalPages is ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
