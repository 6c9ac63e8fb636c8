package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
	customMiddleware "github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

// APIConfig tunes list endpoints.
type APIConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxResultWindow int
	// EmptyListNotFound answers 404 instead of 200 when a list or search matches nothing.
	EmptyListNotFound bool
}

type ServerDeps struct {
	FilmService   ports.FilmService
	GenreService  ports.GenreService
	PersonService ports.PersonService
	// RateLimiterService is optional; nil disables per-client limiting.
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	api            APIConfig
	logger         *logrus.Logger
	filmService    ports.FilmService
	genreService   ports.GenreService
	personService  ports.PersonService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, apiConfig APIConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		api:            apiConfig,
		logger:         logger,
		filmService:    deps.FilmService,
		genreService:   deps.GenreService,
		personService:  deps.PersonService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
