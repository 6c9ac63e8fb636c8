package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		found, perPage, want int
	}{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{25, 10, 3},
		{500, 1, 500},
		{10, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.found, tc.perPage), "found=%d perPage=%d", tc.found, tc.perPage)
	}
}

func TestTotalPages_MatchesCeil(t *testing.T) {
	for found := 0; found <= 300; found++ {
		for perPage := 1; perPage <= 40; perPage++ {
			pages := TotalPages(found, perPage)
			assert.GreaterOrEqual(t, pages*perPage, found)
			if found > 0 {
				assert.Less(t, (pages-1)*perPage, found)
			}
		}
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Number: 1, Size: 50}.Offset())
	assert.Equal(t, 20, PageRequest{Number: 3, Size: 10}.Offset())
	assert.Equal(t, 0, PageRequest{Number: 0, Size: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(PageRequest{Number: 1, Size: 10}, 25)
	assert.Equal(t, Meta{Found: 25, Pages: 3, Page: 1, PerPage: 10}, m)
}

func TestResult_Empty(t *testing.T) {
	var nilResult *Result[string]
	assert.True(t, nilResult.Empty())
	assert.True(t, (&Result[string]{Total: 4}).Empty())
	assert.False(t, (&Result[string]{Items: []string{"a"}, Total: 1}).Empty())
}

func TestSortField_String(t *testing.T) {
	assert.Equal(t, "imdb_rating:desc", SortField{Field: "imdb_rating", Direction: SortDesc}.String())
}

func TestPageRequest_WithinWindow(t *testing.T) {
	assert.True(t, PageRequest{Number: 200, Size: 50}.WithinWindow(MaxResultWindow))
	assert.False(t, PageRequest{Number: 201, Size: 50}.WithinWindow(MaxResultWindow))
	assert.False(t, PageRequest{Number: math.MaxInt, Size: 50}.WithinWindow(MaxResultWindow))
	assert.True(t, PageRequest{Number: 1, Size: 500}.WithinWindow(500))
}
