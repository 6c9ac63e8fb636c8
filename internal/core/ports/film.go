package ports

import (
	"context"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
)

// FilmService defines the read operations over films
type FilmService interface {
	GetFilm(ctx context.Context, id string) (*film.Film, error)
	ListFilms(ctx context.Context, q film.ListQuery) (*search.Result[*film.Film], error)
	SearchFilms(ctx context.Context, q search.TextSearch) (*search.Result[*film.Film], error)
}
