package genre

// Genre is a document of the genres index.
type Genre struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Summary is the public projection used in genre listings.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func Summaries(genres []*Genre) []Summary {
	out := make([]Summary, 0, len(genres))
	for _, g := range genres {
		out = append(out, Summary{ID: g.ID, Name: g.Name})
	}
	return out
}
