package services

import (
	"context"
	"strings"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// filmSearchFields weights title matches above description matches.
var filmSearchFields = []string{"title^3", "description"}

// FilmService implements ports.FilmService
type FilmService struct {
	index   string
	fetcher *ItemFetcher[film.Film]
	backend ports.SearchBackend
}

func NewFilmService(index string, deps FetcherDeps) *FilmService {
	return &FilmService{
		index:   index,
		fetcher: NewItemFetcher[film.Film](index, deps),
		backend: deps.Backend,
	}
}

func (s *FilmService) GetFilm(ctx context.Context, id string) (*film.Film, error) {
	return s.fetcher.FetchByID(ctx, id)
}

// ListFilms returns films ordered by rating, optionally restricted to one genre.
func (s *FilmService) ListFilms(ctx context.Context, q film.ListQuery) (*search.Result[*film.Film], error) {
	var query search.Query
	if g := strings.TrimSpace(q.Genre); g != "" {
		query = search.Match{Field: "genre", Text: g, Fuzziness: search.FuzzinessAuto, Operator: search.OperatorAnd}
	}
	dir := q.Sort
	if dir == "" {
		dir = search.SortDesc
	}
	res, err := s.backend.Search(ctx, pageRequest(s.index, query, q.Page, search.SortField{Field: film.RatingField, Direction: dir}))
	if err != nil {
		return nil, err
	}
	return decodeResults[film.Film](s.index, res)
}

// SearchFilms runs a fuzzy full-text search over titles and descriptions.
// Blank text lists every film.
func (s *FilmService) SearchFilms(ctx context.Context, q search.TextSearch) (*search.Result[*film.Film], error) {
	var query search.Query
	if t := strings.TrimSpace(q.Text); t != "" {
		query = search.MultiMatch{Fields: filmSearchFields, Text: t, Fuzziness: search.FuzzinessAuto}
	}
	res, err := s.backend.Search(ctx, pageRequest(s.index, query, q.Page))
	if err != nil {
		return nil, err
	}
	return decodeResults[film.Film](s.index, res)
}
