package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/person"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// PersonService implements ports.PersonService
type PersonService struct {
	index     string
	filmIndex string
	fetcher   *ItemFetcher[person.Person]
	backend   ports.SearchBackend
	logger    *logrus.Logger
}

// NewPersonService reads persons from index and their filmographies from filmIndex.
func NewPersonService(index, filmIndex string, deps FetcherDeps) *PersonService {
	return &PersonService{
		index:     index,
		filmIndex: filmIndex,
		fetcher:   NewItemFetcher[person.Person](index, deps),
		backend:   deps.Backend,
		logger:    deps.Logger,
	}
}

func (s *PersonService) GetPerson(ctx context.Context, id string) (*person.Person, error) {
	return s.fetcher.FetchByID(ctx, id)
}

func (s *PersonService) ListPersons(ctx context.Context, page search.PageRequest) (*search.Result[*person.Person], error) {
	res, err := s.backend.Search(ctx, pageRequest(s.index, nil, page))
	if err != nil {
		return nil, err
	}
	return decodeResults[person.Person](s.index, res)
}

func (s *PersonService) SearchPersons(ctx context.Context, q search.TextSearch) (*search.Result[*person.Person], error) {
	var query search.Query
	if t := strings.TrimSpace(q.Text); t != "" {
		query = search.Match{Field: "name", Text: t, Fuzziness: search.FuzzinessAuto}
	}
	res, err := s.backend.Search(ctx, pageRequest(s.index, query, q.Page))
	if err != nil {
		return nil, err
	}
	return decodeResults[person.Person](s.index, res)
}

// GetPersonFilms returns the films a person acted in, wrote or directed,
// best rated first. A film matches through the person's recorded roles or
// through its own cast and crew fields.
func (s *PersonService) GetPersonFilms(ctx context.Context, personID string, page search.PageRequest) (*search.Result[*film.Film], error) {
	p, err := s.fetcher.FetchByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	should := []search.Query{
		search.Term{Field: "actors.id", Value: p.ID},
		search.Term{Field: "writers.id", Value: p.ID},
	}
	if ids := p.FilmIDs(); len(ids) > 0 {
		should = append([]search.Query{search.IDs{Values: ids}}, should...)
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		should = append(should, search.MatchPhrase{Field: "director", Text: name})
	}
	query := search.Bool{Should: should, MinimumShouldMatch: 1}

	res, err := s.backend.Search(ctx, pageRequest(s.filmIndex, query, page,
		search.SortField{Field: film.RatingField, Direction: search.SortDesc}))
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"person_id": p.ID, "found": res.Total}).Debug("person films resolved")
	}
	return decodeResults[film.Film](s.filmIndex, res)
}
