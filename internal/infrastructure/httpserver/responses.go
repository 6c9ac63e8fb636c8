package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/core/ports"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/helpers"
)

// listResponse is the envelope of every list and search endpoint.
type listResponse[T any] struct {
	Meta search.Meta `json:"meta"`
	Data []T         `json:"data"`
}

func (s *Server) pageLimits() helpers.PageLimits {
	return helpers.PageLimits{DefaultSize: s.api.DefaultPageSize, MaxSize: s.api.MaxPageSize, MaxWindow: s.api.MaxResultWindow}
}

// respondList writes one page. what names the resource in the optional
// empty-result 404.
func respondList[T any](s *Server, c echo.Context, page search.PageRequest, total int, data []T, what string) error {
	if len(data) == 0 && s.api.EmptyListNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "no "+what+" found")
	}
	if data == nil {
		data = []T{}
	}
	return c.JSON(http.StatusOK, listResponse[T]{Meta: search.NewMeta(page, total), Data: data})
}

// fail logs server-side faults and converts err to its HTTP status.
func (s *Server) fail(c echo.Context, err error, what string) error {
	he := helpers.HTTPError(err, what)
	if s.logger != nil && he.Code >= http.StatusInternalServerError {
		entry := s.logger.WithFields(logrus.Fields{"path": c.Path(), "request_id": helpers.GetRequestID(c)}).WithError(err)
		if errors.Is(err, ports.ErrBackendUnavailable) {
			entry.Warn("search backend unavailable")
		} else {
			entry.Error("request failed")
		}
	}
	return he
}
