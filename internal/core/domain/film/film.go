package film

import (
	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
)

// RatingField is the only sortable film field.
const RatingField = "imdb_rating"

// Film is a document of the films index. Actors, Writers and Director are
// nil when the document omits them and empty when it lists none.
type Film struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	IMDBRating  float64     `json:"imdb_rating"`
	Genre       []string    `json:"genre"`
	Actors      []PersonRef `json:"actors"`
	Writers     []PersonRef `json:"writers"`
	Director    []string    `json:"director"`
}

// PersonRef is a cast or crew member embedded in a film document.
type PersonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary is the public projection used in film listings.
type Summary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IMDBRating  float64 `json:"imdb_rating"`
}

func (f *Film) Summary() Summary {
	return Summary{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		IMDBRating:  f.IMDBRating,
	}
}

// Summaries projects a page of films for listing.
func Summaries(films []*Film) []Summary {
	out := make([]Summary, 0, len(films))
	for _, f := range films {
		out = append(out, f.Summary())
	}
	return out
}

// ListQuery selects a page of films ordered by rating, optionally narrowed
// to a genre.
type ListQuery struct {
	Page  search.PageRequest
	Sort  search.SortDirection
	Genre string
}

// ParseSort accepts "asc"/"desc" and the field forms "imdb_rating" and
// "-imdb_rating". Blank means descending.
func ParseSort(raw string) (search.SortDirection, bool) {
	switch raw {
	case "", "desc", "-" + RatingField:
		return search.SortDesc, true
	case "asc", RatingField:
		return search.SortAsc, true
	default:
		return "", false
	}
}
