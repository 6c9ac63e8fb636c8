package person

// Person is a document of the persons index.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Roles []Role `json:"roles"`
}

// Role ties a person to the films they worked on in one capacity.
type Role struct {
	Role    string   `json:"role"`
	FilmIDs []string `json:"film_ids"`
}

// Summary is the public projection used in person listings.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilmIDs returns the distinct film ids across all roles, in first-seen order.
func (p *Person) FilmIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range p.Roles {
		for _, id := range r.FilmIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func Summaries(persons []*Person) []Summary {
	out := make([]Summary, 0, len(persons))
	for _, p := range persons {
		out = append(out, Summary{ID: p.ID, Name: p.Name})
	}
	return out
}
