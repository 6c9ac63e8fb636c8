package mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/genre"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/person"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// MemoryCache is an in-memory ports.Cache with a controllable clock.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	// Now drives expiry; defaults to time.Now
	Now func() time.Time

	GetErr error
	SetErr error

	Gets atomic.Int64
	Sets atomic.Int64
}

type memoryEntry struct {
	value     []byte
	ttl       time.Duration
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), Now: time.Now}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.Gets.Add(1)
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.ttl > 0 && !m.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.Sets.Add(1)
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: append([]byte(nil), value...), ttl: ttl, expiresAt: m.Now().Add(ttl)}
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Keys returns the keys currently held, expired or not.
func (m *MemoryCache) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// TTLOf returns the TTL the key was last written with, 0 if absent.
func (m *MemoryCache) TTLOf(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key].ttl
}

// Clock is a manually advanced time source for MemoryCache.Now.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock { return &Clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// SearchBackendMock is a lightweight mock for ports.SearchBackend
type SearchBackendMock struct {
	GetByIDFn func(ctx context.Context, index, id string) (*ports.Document, error)
	SearchFn  func(ctx context.Context, req *ports.SearchRequest) (*ports.SearchResponse, error)

	GetByIDCalls atomic.Int64
	SearchCalls  atomic.Int64

	mu       sync.Mutex
	requests []*ports.SearchRequest
}

func (m *SearchBackendMock) GetByID(ctx context.Context, index, id string) (*ports.Document, error) {
	m.GetByIDCalls.Add(1)
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, index, id)
	}
	return nil, fmt.Errorf("%s/%s: %w", index, id, ports.ErrNotFound)
}

func (m *SearchBackendMock) Search(ctx context.Context, req *ports.SearchRequest) (*ports.SearchResponse, error) {
	m.SearchCalls.Add(1)
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.SearchFn != nil {
		return m.SearchFn(ctx, req)
	}
	return &ports.SearchResponse{}, nil
}

// LastSearch returns the most recent search request, nil if none.
func (m *SearchBackendMock) LastSearch() *ports.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// FilmServiceMock is a lightweight mock implementing ports.FilmService
type FilmServiceMock struct {
	GetFilmFn     func(ctx context.Context, id string) (*film.Film, error)
	ListFilmsFn   func(ctx context.Context, q film.ListQuery) (*search.Result[*film.Film], error)
	SearchFilmsFn func(ctx context.Context, q search.TextSearch) (*search.Result[*film.Film], error)
}

func (m *FilmServiceMock) GetFilm(ctx context.Context, id string) (*film.Film, error) {
	if m.GetFilmFn != nil {
		return m.GetFilmFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *FilmServiceMock) ListFilms(ctx context.Context, q film.ListQuery) (*search.Result[*film.Film], error) {
	if m.ListFilmsFn != nil {
		return m.ListFilmsFn(ctx, q)
	}
	return &search.Result[*film.Film]{}, nil
}
func (m *FilmServiceMock) SearchFilms(ctx context.Context, q search.TextSearch) (*search.Result[*film.Film], error) {
	if m.SearchFilmsFn != nil {
		return m.SearchFilmsFn(ctx, q)
	}
	return &search.Result[*film.Film]{}, nil
}

// GenreServiceMock is a lightweight mock implementing ports.GenreService
type GenreServiceMock struct {
	GetGenreFn   func(ctx context.Context, id string) (*genre.Genre, error)
	ListGenresFn func(ctx context.Context, page search.PageRequest) (*search.Result[*genre.Genre], error)
}

func (m *GenreServiceMock) GetGenre(ctx context.Context, id string) (*genre.Genre, error) {
	if m.GetGenreFn != nil {
		return m.GetGenreFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *GenreServiceMock) ListGenres(ctx context.Context, page search.PageRequest) (*search.Result[*genre.Genre], error) {
	if m.ListGenresFn != nil {
		return m.ListGenresFn(ctx, page)
	}
	return &search.Result[*genre.Genre]{}, nil
}

// PersonServiceMock is a lightweight mock implementing ports.PersonService
type PersonServiceMock struct {
	GetPersonFn      func(ctx context.Context, id string) (*person.Person, error)
	ListPersonsFn    func(ctx context.Context, page search.PageRequest) (*search.Result[*person.Person], error)
	SearchPersonsFn  func(ctx context.Context, q search.TextSearch) (*search.Result[*person.Person], error)
	GetPersonFilmsFn func(ctx context.Context, personID string, page search.PageRequest) (*search.Result[*film.Film], error)
}

func (m *PersonServiceMock) GetPerson(ctx context.Context, id string) (*person.Person, error) {
	if m.GetPersonFn != nil {
		return m.GetPersonFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *PersonServiceMock) ListPersons(ctx context.Context, page search.PageRequest) (*search.Result[*person.Person], error) {
	if m.ListPersonsFn != nil {
		return m.ListPersonsFn(ctx, page)
	}
	return &search.Result[*person.Person]{}, nil
}
func (m *PersonServiceMock) SearchPersons(ctx context.Context, q search.TextSearch) (*search.Result[*person.Person], error) {
	if m.SearchPersonsFn != nil {
		return m.SearchPersonsFn(ctx, q)
	}
	return &search.Result[*person.Person]{}, nil
}
func (m *PersonServiceMock) GetPersonFilms(ctx context.Context, personID string, page search.PageRequest) (*search.Result[*film.Film], error) {
	if m.GetPersonFilmsFn != nil {
		return m.GetPersonFilmsFn(ctx, personID, page)
	}
	return &search.Result[*film.Film]{}, nil
}

// RateLimitRepositoryMock is a lightweight mock for ports.RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, clientKey, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// RateLimiterServiceMock is a lightweight mock for ports.RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 1, 1, time.Now(), nil
}

// HealthCheckerMock is a lightweight mock for ports.HealthChecker
type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}
