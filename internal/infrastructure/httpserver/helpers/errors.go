package helpers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// HTTPError maps a service error to the response status. what names the
// requested resource in not-found messages.
func HTTPError(err error, what string) *echo.HTTPError {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, ports.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	case errors.Is(err, ports.ErrBackendUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search backend unavailable")
	case errors.Is(err, ports.ErrMalformedDocument):
		return echo.NewHTTPError(http.StatusInternalServerError, "malformed document in search backend")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
