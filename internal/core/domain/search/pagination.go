package search

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
	// MaxResultWindow matches the Elasticsearch index.max_result_window default;
	// offset plus page size may not exceed it.
	MaxResultWindow = 10000
)

// PageRequest is a 1-based page selection.
type PageRequest struct {
	Number int `json:"page"`
	Size   int `json:"per_page"`
}

// WithinWindow reports whether the page ends at or before window documents.
func (p PageRequest) WithinWindow(window int) bool {
	if p.Number < 1 || p.Size < 1 {
		return true
	}
	return p.Number <= window/p.Size
}

// DefaultPage returns the first page with the default size.
func DefaultPage() PageRequest {
	return PageRequest{Number: 1, Size: DefaultPageSize}
}

// Offset returns the number of documents to skip.
func (p PageRequest) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Meta is the pagination envelope returned with every list response.
type Meta struct {
	Found   int `json:"found"`
	Pages   int `json:"pages"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// NewMeta derives the envelope for found total matches.
func NewMeta(p PageRequest, found int) Meta {
	return Meta{
		Found:   found,
		Pages:   TotalPages(found, p.Size),
		Page:    p.Number,
		PerPage: p.Size,
	}
}

// TotalPages returns ceil(found / perPage), 0 when nothing was found.
func TotalPages(found, perPage int) int {
	if found <= 0 || perPage <= 0 {
		return 0
	}
	return (found + perPage - 1) / perPage
}

// Result is one page of decoded items plus the exact total match count.
type Result[T any] struct {
	Items []T
	Total int
}

// Empty reports whether the page carries no items.
func (r *Result[T]) Empty() bool {
	return r == nil || len(r.Items) == 0
}
