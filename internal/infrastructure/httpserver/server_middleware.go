package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.allowedOrigins(),
		AllowMethods: []string{"GET", "HEAD", "OPTIONS"},
	}))
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			helpers.SetRequestID(c, id)
		},
	}))

	s.echo.Use(s.middleware.Metrics.CollectHTTPMetrics())
	s.echo.Use(s.middleware.Logging.RequestLogging())
	if s.middleware.RateLimit != nil {
		s.echo.Use(s.middleware.RateLimit.Handler())
	}
}

func (s *Server) allowedOrigins() []string {
	if s.config == nil || len(s.config.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return s.config.AllowedOrigins
}
