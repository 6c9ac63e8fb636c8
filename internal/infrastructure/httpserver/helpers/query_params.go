package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/film"
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
)

const (
	ParamPageSize    = "page[size]"
	ParamPageNumber  = "page[number]"
	ParamSort        = "sort"
	ParamGenreFilter = "filter[genre]"
	ParamQuery       = "query"
)

// PageLimits bounds the page[size] a client may ask for and how deep it may page.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
	// MaxWindow caps offset plus page size.
	MaxWindow int
}

// ParsePage reads page[size] and page[number]. Missing values take the
// defaults; anything non-numeric or out of range is a 400.
func ParsePage(c echo.Context, limits PageLimits) (search.PageRequest, error) {
	if limits.DefaultSize <= 0 {
		limits.DefaultSize = search.DefaultPageSize
	}
	if limits.MaxSize <= 0 {
		limits.MaxSize = search.MaxPageSize
	}
	if limits.MaxWindow <= 0 {
		limits.MaxWindow = search.MaxResultWindow
	}

	page := search.PageRequest{Number: 1, Size: limits.DefaultSize}
	if raw := c.QueryParam(ParamPageSize); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > limits.MaxSize {
			return page, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer between 1 and %d", ParamPageSize, limits.MaxSize))
		}
		page.Size = v
	}
	if raw := c.QueryParam(ParamPageNumber); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return page, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", ParamPageNumber))
		}
		page.Number = v
	}
	if !page.WithinWindow(limits.MaxWindow) {
		return page, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s times %s may not exceed %d", ParamPageNumber, ParamPageSize, limits.MaxWindow))
	}
	return page, nil
}

// ParseFilmSort reads the film list ordering, descending by rating by default.
func ParseFilmSort(c echo.Context) (search.SortDirection, error) {
	dir, ok := film.ParseSort(strings.TrimSpace(c.QueryParam(ParamSort)))
	if !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, "sort must be one of asc, desc, imdb_rating, -imdb_rating")
	}
	return dir, nil
}

func GenreFilter(c echo.Context) string {
	return strings.TrimSpace(c.QueryParam(ParamGenreFilter))
}

func SearchText(c echo.Context) string {
	return strings.TrimSpace(c.QueryParam(ParamQuery))
}
