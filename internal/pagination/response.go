// Package pagination contains the paginated response contract shared by the API, the client
// and the page cache, plus the Paginator that serves pages from an injected fetch function.
package pagination

import "context"

// Page size bounds applied to every paginated list.
const (
	MinPageSize     = 10
	MaxPageSize     = 1000
	DefaultPageSize = 100
)

// Meta describes where a page sits within the full result set.
// HasNext and HasPrev are optional on the wire; when absent they are derived from Page and TotalPages.
type Meta struct {
	Total      int   `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	HasNext    *bool `json:"hasNext,omitempty"`
	HasPrev    *bool `json:"hasPrev,omitempty"`
}

// Next reports whether a page follows Page.
func (m Meta) Next() bool {
	if m.HasNext != nil {
		return *m.HasNext
	}
	return m.Page < m.TotalPages
}

// Prev reports whether a page precedes Page.
func (m Meta) Prev() bool {
	if m.HasPrev != nil {
		return *m.HasPrev
	}
	return m.Page > 1
}

// Response is one page of records together with its pagination metadata.
type Response[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// FetchFunc loads a single page of at most limit records.
// Implementations own timeouts and transport errors; the paginator never retries.
type FetchFunc[T any] func(ctx context.Context, page, limit int) (Response[T], error)

// NewResponse builds a fully populated response for page of size limit out of total records.
func NewResponse[T any](items []T, total, page, limit int) Response[T] {
	if items == nil {
		items = make([]T, 0)
	}
	totalPages := TotalPages(total, limit)
	hasNext := page < totalPages
	hasPrev := page > 1
	return Response[T]{
		Data: items,
		Pagination: Meta{
			Total:      total,
			TotalPages: totalPages,
			Page:       page,
			HasNext:    &hasNext,
			HasPrev:    &hasPrev,
		},
	}
}

// TotalPages returns the number of pages of size limit needed to hold total records.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}

// ClampPageSize forces n into [MinPageSize, MaxPageSize].
func ClampPageSize(n int) int {
	switch {
	case n < MinPageSize:
		return MinPageSize
	case n > MaxPageSize:
		return MaxPageSize
	default:
		return n
	}
}
