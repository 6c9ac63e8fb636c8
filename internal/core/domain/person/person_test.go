package person

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerson_FilmIDs(t *testing.T) {
	p := &Person{
		ID:   "p1",
		Name: "Frank Darabont",
		Roles: []Role{
			{Role: "director", FilmIDs: []string{"tt0111161", "tt0120689"}},
			{Role: "writer", FilmIDs: []string{"tt0111161", "tt0884328"}},
		},
	}
	require.Equal(t, []string{"tt0111161", "tt0120689", "tt0884328"}, p.FilmIDs())
	require.Nil(t, (&Person{}).FilmIDs())
}
