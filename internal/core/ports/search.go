package ports

import (
	"context"
	"encoding/json"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
)

// Document is a raw document returned by the search backend.
type Document struct {
	ID     string
	Source json.RawMessage
}

// SearchRequest describes one paginated query against an index.
type SearchRequest struct {
	Index string
	// Query nil scans the whole index.
	Query search.Query
	Sort  []search.SortField
	Size  int
	From  int
}

// SearchResponse carries the page of documents and the exact match count.
type SearchResponse struct {
	Documents []Document
	Total     int
}

// SearchBackend is the document store the read services query.
// GetByID returns ErrNotFound for a missing document; transport, timeout and
// server failures wrap ErrBackendUnavailable.
type SearchBackend interface {
	GetByID(ctx context.Context, index, id string) (*Document, error)
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
}
