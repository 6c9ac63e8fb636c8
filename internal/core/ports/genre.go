package ports

import (
	"context"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/genre"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
)

// GenreService defines the read operations over genres
type GenreService interface {
	GetGenre(ctx context.Context, id string) (*genre.Genre, error)
	ListGenres(ctx context.Context, page search.PageRequest) (*search.Result[*genre.Genre], error)
}
