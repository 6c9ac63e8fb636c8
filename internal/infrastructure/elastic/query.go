package elastic

import (
	"fmt"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// searchBody renders a request as an Elasticsearch search body. Totals are
// always tracked exactly.
func searchBody(req *ports.SearchRequest) (map[string]any, error) {
	query, err := buildQuery(req.Query)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"query":            query,
		"size":             req.Size,
		"from":             req.From,
		"track_total_hits": true,
	}
	if len(req.Sort) > 0 {
		sort := make([]map[string]any, 0, len(req.Sort))
		for _, s := range req.Sort {
			sort = append(sort, map[string]any{s.Field: map[string]any{"order": string(s.Direction)}})
		}
		body["sort"] = sort
	}
	return body, nil
}

func buildQuery(q search.Query) (map[string]any, error) {
	switch q := q.(type) {
	case nil:
		return map[string]any{"match_all": map[string]any{}}, nil
	case search.Match:
		opts := map[string]any{"query": q.Text}
		if q.Fuzziness != "" {
			opts["fuzziness"] = q.Fuzziness
		}
		if q.Operator != "" {
			opts["operator"] = string(q.Operator)
		}
		return map[string]any{"match": map[string]any{q.Field: opts}}, nil
	case search.MultiMatch:
		opts := map[string]any{"query": q.Text, "fields": q.Fields}
		if q.Fuzziness != "" {
			opts["fuzziness"] = q.Fuzziness
		}
		return map[string]any{"multi_match": opts}, nil
	case search.MatchPhrase:
		return map[string]any{"match_phrase": map[string]any{q.Field: q.Text}}, nil
	case search.Term:
		return map[string]any{"term": map[string]any{q.Field: map[string]any{"value": q.Value}}}, nil
	case search.IDs:
		return map[string]any{"ids": map[string]any{"values": q.Values}}, nil
	case search.Bool:
		clauses := map[string]any{}
		if len(q.Must) > 0 {
			must, err := buildQueries(q.Must)
			if err != nil {
				return nil, err
			}
			clauses["must"] = must
		}
		if len(q.Should) > 0 {
			should, err := buildQueries(q.Should)
			if err != nil {
				return nil, err
			}
			clauses["should"] = should
			if q.MinimumShouldMatch > 0 {
				clauses["minimum_should_match"] = q.MinimumShouldMatch
			}
		}
		return map[string]any{"bool": clauses}, nil
	default:
		return nil, fmt.Errorf("unsupported query clause %T", q)
	}
}

func buildQueries(qs []search.Query) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(qs))
	for _, q := range qs {
		built, err := buildQuery(q)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}
