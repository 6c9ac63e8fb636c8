package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/person"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
	"github.com/avatarctic/film-catalog-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getPerson(c echo.Context) error {
	p, err := s.personService.GetPerson(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err, "person")
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) listPersons(c echo.Context) error {
	page, err := helpers.ParsePage(c, s.pageLimits())
	if err != nil {
		return err
	}
	res, err := s.personService.ListPersons(c.Request().Context(), page)
	if err != nil {
		return s.fail(c, err, "persons")
	}
	return respondList(s, c, page, res.Total, person.Summaries(res.Items), "persons")
}

func (s *Server) searchPersons(c echo.Context) error {
	page, err := helpers.ParsePage(c, s.pageLimits())
	if err != nil {
		return err
	}
	res, err := s.personService.SearchPersons(c.Request().Context(), search.TextSearch{Text: helpers.SearchText(c), Page: page})
	if err != nil {
		return s.fail(c, err, "persons")
	}
	return respondList(s, c, page, res.Total, person.Summaries(res.Items), "persons")
}

// getPersonFilms answers 404 for an unknown person and an empty page for a
// person without films.
func (s *Server) getPersonFilms(c echo.Context) error {
	page, err := helpers.ParsePage(c, s.pageLimits())
	if err != nil {
		return err
	}
	res, err := s.personService.GetPersonFilms(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return s.fail(c, err, "person")
	}
	return respondList(s, c, page, res.Total, film.Summaries(res.Items), "films")
}
