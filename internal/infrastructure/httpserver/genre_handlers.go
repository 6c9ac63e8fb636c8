package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/genre"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getGenre(c echo.Context) error {
	g, err := s.genreService.GetGenre(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err, "genre")
	}
	return c.JSON(http.StatusOK, g)
}

func (s *Server) listGenres(c echo.Context) error {
	page, err := helpers.ParsePage(c, s.pageLimits())
	if err != nil {
		return err
	}
	res, err := s.genreService.ListGenres(c.Request().Context(), page)
	if err != nil {
		return s.fail(c, err, "genres")
	}
	return respondList(s, c, page, res.Total, genre.Summaries(res.Items), "genres")
}
