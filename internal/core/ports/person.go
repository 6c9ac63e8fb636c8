package ports

import (
	"context"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/person"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
)

// PersonService defines the read operations over persons
type PersonService interface {
	GetPerson(ctx context.Context, id string) (*person.Person, error)
	ListPersons(ctx context.Context, page search.PageRequest) (*search.Result[*person.Person], error)
	SearchPersons(ctx context.Context, q search.TextSearch) (*search.Result[*person.Person], error)
	// GetPersonFilms returns ErrNotFound when the person does not exist.
	GetPersonFilms(ctx context.Context, personID string, page search.PageRequest) (*search.Result[*film.Film], error)
}
