package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getFilm(c echo.Context) error {
	f, err := s.filmService.GetFilm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err, "film")
	}
	return c.JSON(http.StatusOK, f)
}

func (s *Server) listFilms(c echo.Context) error {
	page, err := helpers.ParsePage(c, s.pageLimits())
	if err != nil {
		return err
	}
	dir, err := helpers.ParseFilmSort(c)
	if err != nil {
		return err
	}
	res, err := s.filmService.ListFilms(c.Request().Context(), film.ListQuery{Page: page, Sort: dir, Genre: helpers.GenreFilter(c)})
	if err != nil {
		return s.fail(c, err, "films")
	}
	return respondList(s, c, page, res.Total, film.Summaries(res.Items), "films")
}

func (s *Server) searchFilms(c echo.Context) error {
	page, err := helpers.ParsePage(c, s.pageLimits())
	if err != nil {
		return err
	}
	res, err := s.filmService.SearchFilms(c.Request().Context(), search.TextSearch{Text: helpers.SearchText(c), Page: page})
	if err != nil {
		return s.fail(c, err, "films")
	}
	return respondList(s, c, page, res.Total, film.Summaries(res.Items), "films")
}
