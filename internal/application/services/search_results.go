package services

import (
	"encoding/json"
	"fmt"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// decodeResults turns a page of backend documents into entities. A document
// that does not decode fails the whole page.
func decodeResults[T any](index string, res *ports.SearchResponse) (*search.Result[*T], error) {
	out := &search.Result[*T]{Total: res.Total, Items: make([]*T, 0, len(res.Documents))}
	for _, doc := range res.Documents {
		item := new(T)
		if err := json.Unmarshal(doc.Source, item); err != nil {
			return nil, fmt.Errorf("%s/%s: %w: %w", index, doc.ID, ports.ErrMalformedDocument, err)
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func pageRequest(index string, q search.Query, page search.PageRequest, sort ...search.SortField) *ports.SearchRequest {
	return &ports.SearchRequest{
		Index: index,
		Query: q,
		Sort:  sort,
		Size:  page.Size,
		From:  page.Offset(),
	}
}
