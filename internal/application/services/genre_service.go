package services

import (
	"context"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/genre"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// GenreService implements ports.GenreService
type GenreService struct {
	index   string
	fetcher *ItemFetcher[genre.Genre]
	backend ports.SearchBackend
}

func NewGenreService(index string, deps FetcherDeps) *GenreService {
	return &GenreService{
		index:   index,
		fetcher: NewItemFetcher[genre.Genre](index, deps),
		backend: deps.Backend,
	}
}

func (s *GenreService) GetGenre(ctx context.Context, id string) (*genre.Genre, error) {
	return s.fetcher.FetchByID(ctx, id)
}

func (s *GenreService) ListGenres(ctx context.Context, page search.PageRequest) (*search.Result[*genre.Genre], error) {
	res, err := s.backend.Search(ctx, pageRequest(s.index, nil, page))
	if err != nil {
		return nil, err
	}
	return decodeResults[genre.Genre](s.index, res)
}
