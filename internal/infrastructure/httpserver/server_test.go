package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/genre"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/person"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver"
	tmocks "github.com/avatarctic/film-catalog-api/test/mocks"
)

func newServer(deps httpserver.ServerDeps, api httpserver.APIConfig) *httpserver.Server {
	if deps.FilmService == nil {
		deps.FilmService = &tmocks.FilmServiceMock{}
	}
	if deps.GenreService == nil {
		deps.GenreService = &tmocks.GenreServiceMock{}
	}
	if deps.PersonService == nil {
		deps.PersonService = &tmocks.PersonServiceMock{}
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, api, logger, deps)
}

func get(s *httpserver.Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Meta search.Meta      `json:"meta"`
	Data []map[string]any `json:"data"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func filmsPage(n, total int) *search.Result[*film.Film] {
	res := &search.Result[*film.Film]{Total: total}
	for i := 0; i < n; i++ {
		res.Items = append(res.Items, &film.Film{ID: fmt.Sprintf("tt%d", i), Title: fmt.Sprintf("Film %d", i), IMDBRating: 8.1, Genre: []string{"Adventure"}})
	}
	return res
}

func TestGetFilm(t *testing.T) {
	films := &tmocks.FilmServiceMock{GetFilmFn: func(ctx context.Context, id string) (*film.Film, error) {
		switch id {
		case "tt0111161":
			return &film.Film{ID: id, Title: "The Shawshank Redemption", IMDBRating: 9.3, Director: []string{"Frank Darabont"}}, nil
		case "down":
			return nil, fmt.Errorf("get: %w", ports.ErrBackendUnavailable)
		case "broken":
			return nil, fmt.Errorf("decode: %w", ports.ErrMalformedDocument)
		}
		return nil, fmt.Errorf("movies/%s: %w", id, ports.ErrNotFound)
	}}
	s := newServer(httpserver.ServerDeps{FilmService: films}, httpserver.APIConfig{})

	rec := get(s, "/api/v1/films/tt0111161")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "The Shawshank Redemption", got["title"])
	require.Equal(t, 9.3, got["imdb_rating"])
	require.Nil(t, got["actors"])
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = get(s, "/api/v1/films/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"film not found"}`, rec.Body.String())

	require.Equal(t, http.StatusServiceUnavailable, get(s, "/api/v1/films/down").Code)
	require.Equal(t, http.StatusInternalServerError, get(s, "/api/v1/films/broken").Code)
}

func TestListFilms_PassesFiltersAndPaginates(t *testing.T) {
	var seen film.ListQuery
	films := &tmocks.FilmServiceMock{ListFilmsFn: func(ctx context.Context, q film.ListQuery) (*search.Result[*film.Film], error) {
		seen = q
		return filmsPage(10, 25), nil
	}}
	s := newServer(httpserver.ServerDeps{FilmService: films}, httpserver.APIConfig{DefaultPageSize: 50, MaxPageSize: 500})

	rec := get(s, "/api/v1/films?page%5Bsize%5D=10&page%5Bnumber%5D=1&filter%5Bgenre%5D=Adventure&sort=-imdb_rating")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, film.ListQuery{Page: search.PageRequest{Number: 1, Size: 10}, Sort: search.SortDesc, Genre: "Adventure"}, seen)

	env := decodeList(t, rec)
	require.Equal(t, search.Meta{Found: 25, Pages: 3, Page: 1, PerPage: 10}, env.Meta)
	require.Len(t, env.Data, 10)
	require.Equal(t, "tt0", env.Data[0]["id"])
	require.NotContains(t, env.Data[0], "genre", "listings carry summaries only")
}

func TestListFilms_Defaults(t *testing.T) {
	var seen film.ListQuery
	films := &tmocks.FilmServiceMock{ListFilmsFn: func(ctx context.Context, q film.ListQuery) (*search.Result[*film.Film], error) {
		seen = q
		return filmsPage(1, 1), nil
	}}
	s := newServer(httpserver.ServerDeps{FilmService: films}, httpserver.APIConfig{})

	rec := get(s, "/api/v1/films")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, search.PageRequest{Number: 1, Size: 50}, seen.Page)
	require.Equal(t, search.SortDesc, seen.Sort)
	require.Equal(t, search.Meta{Found: 1, Pages: 1, Page: 1, PerPage: 50}, decodeList(t, rec).Meta)
}

func TestListFilms_InvalidParamsAre400(t *testing.T) {
	films := &tmocks.FilmServiceMock{ListFilmsFn: func(ctx context.Context, q film.ListQuery) (*search.Result[*film.Film], error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}}
	s := newServer(httpserver.ServerDeps{FilmService: films}, httpserver.APIConfig{MaxPageSize: 500})

	for _, q := range []string{"page%5Bsize%5D=0", "page%5Bsize%5D=501", "page%5Bsize%5D=abc", "page%5Bnumber%5D=0", "sort=title", "page%5Bnumber%5D=9223372036854775807&page%5Bsize%5D=50"} {
		require.Equal(t, http.StatusBadRequest, get(s, "/api/v1/films?"+q).Code, q)
	}
}

func TestListFilms_EmptyResult(t *testing.T) {
	s := newServer(httpserver.ServerDeps{}, httpserver.APIConfig{})
	rec := get(s, "/api/v1/films?filter%5Bgenre%5D=Western")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"meta":{"found":0,"pages":0,"page":1,"per_page":50},"data":[]}`, rec.Body.String())

	strict := newServer(httpserver.ServerDeps{}, httpserver.APIConfig{EmptyListNotFound: true})
	require.Equal(t, http.StatusNotFound, get(strict, "/api/v1/films/search?query=zzz").Code)
}

func TestSearchFilms(t *testing.T) {
	var seen search.TextSearch
	films := &tmocks.FilmServiceMock{SearchFilmsFn: func(ctx context.Context, q search.TextSearch) (*search.Result[*film.Film], error) {
		seen = q
		return filmsPage(2, 2), nil
	}}
	s := newServer(httpserver.ServerDeps{FilmService: films}, httpserver.APIConfig{})

	rec := get(s, "/api/v1/films/search?query=star+wars&page%5Bsize%5D=5")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "star wars", seen.Text)
	require.Equal(t, 5, seen.Page.Size)
	require.Len(t, decodeList(t, rec).Data, 2)
}

func TestGenres(t *testing.T) {
	desc := "Serious stories"
	genres := &tmocks.GenreServiceMock{
		GetGenreFn: func(ctx context.Context, id string) (*genre.Genre, error) {
			if id == "g1" {
				return &genre.Genre{ID: "g1", Name: "Drama", Description: &desc}, nil
			}
			return nil, ports.ErrNotFound
		},
		ListGenresFn: func(ctx context.Context, page search.PageRequest) (*search.Result[*genre.Genre], error) {
			return &search.Result[*genre.Genre]{Total: 1, Items: []*genre.Genre{{ID: "g1", Name: "Drama", Description: &desc}}}, nil
		},
	}
	s := newServer(httpserver.ServerDeps{GenreService: genres}, httpserver.APIConfig{})

	rec := get(s, "/api/v1/genres/g1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"g1","name":"Drama","description":"Serious stories"}`, rec.Body.String())

	require.Equal(t, http.StatusNotFound, get(s, "/api/v1/genres/g2").Code)

	rec = get(s, "/api/v1/genres")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"meta":{"found":1,"pages":1,"page":1,"per_page":50},"data":[{"id":"g1","name":"Drama"}]}`, rec.Body.String())
}

func TestPersons(t *testing.T) {
	var filmsFor string
	persons := &tmocks.PersonServiceMock{
		GetPersonFn: func(ctx context.Context, id string) (*person.Person, error) {
			if id == "p1" {
				return &person.Person{ID: "p1", Name: "Tim Robbins", Roles: []person.Role{{Role: "actor", FilmIDs: []string{"tt0111161"}}}}, nil
			}
			return nil, ports.ErrNotFound
		},
		SearchPersonsFn: func(ctx context.Context, q search.TextSearch) (*search.Result[*person.Person], error) {
			return &search.Result[*person.Person]{Total: 1, Items: []*person.Person{{ID: "p1", Name: "Tim Robbins"}}}, nil
		},
		GetPersonFilmsFn: func(ctx context.Context, personID string, page search.PageRequest) (*search.Result[*film.Film], error) {
			filmsFor = personID
			if personID != "p1" {
				return nil, fmt.Errorf("persons/%s: %w", personID, ports.ErrNotFound)
			}
			return filmsPage(1, 1), nil
		},
	}
	s := newServer(httpserver.ServerDeps{PersonService: persons}, httpserver.APIConfig{})

	rec := get(s, "/api/v1/persons/p1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"p1","name":"Tim Robbins","roles":[{"role":"actor","film_ids":["tt0111161"]}]}`, rec.Body.String())

	rec = get(s, "/api/v1/persons/search?query=tim")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"meta":{"found":1,"pages":1,"page":1,"per_page":50},"data":[{"id":"p1","name":"Tim Robbins"}]}`, rec.Body.String())

	rec = get(s, "/api/v1/persons/p1/films")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "p1", filmsFor)
	require.Len(t, decodeList(t, rec).Data, 1)

	rec = get(s, "/api/v1/persons/ghost/films")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"person not found"}`, rec.Body.String())

	require.Equal(t, http.StatusOK, get(s, "/api/v1/persons").Code)
}

func TestHealth(t *testing.T) {
	ok := &tmocks.HealthCheckerMock{NameValue: "redis"}
	s := newServer(httpserver.ServerDeps{HealthCheckers: []ports.HealthChecker{ok}}, httpserver.APIConfig{})
	rec := get(s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])

	down := &tmocks.HealthCheckerMock{NameValue: "elasticsearch", CheckFn: func(ctx context.Context) error { return errors.New("no route") }}
	s = newServer(httpserver.ServerDeps{HealthCheckers: []ports.HealthChecker{ok, down}}, httpserver.APIConfig{})
	rec = get(s, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "degraded", body["status"])
	require.Equal(t, map[string]any{"redis": "healthy", "elasticsearch": "unhealthy"}, body["dependencies"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(httpserver.ServerDeps{}, httpserver.APIConfig{})
	get(s, "/api/v1/genres")

	rec := get(s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRateLimitWiring(t *testing.T) {
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		return false, 0, 1, time.Now(), nil
	}}
	s := newServer(httpserver.ServerDeps{RateLimiterService: limiter}, httpserver.APIConfig{})
	require.Equal(t, http.StatusTooManyRequests, get(s, "/api/v1/films").Code)
	require.Equal(t, http.StatusOK, get(s, "/health").Code)

	open := newServer(httpserver.ServerDeps{}, httpserver.APIConfig{})
	rec := get(open, "/api/v1/films")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
