package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger == nil {
				return next(c)
			}
			start := time.Now()
			fields := logrus.Fields{"method": c.Request().Method, "path": c.Path(), "request_id": helpers.GetRequestID(c)}
			m.logger.WithFields(fields).Debug("incoming request")

			err := next(c)

			fields["status"] = c.Response().Status
			fields["latency_ms"] = time.Since(start).Milliseconds()
			if err != nil {
				m.logger.WithFields(fields).WithError(err).Debug("request failed")
			} else {
				m.logger.WithFields(fields).Debug("request completed")
			}
			return err
		}
	}
}
