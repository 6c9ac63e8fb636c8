// Package search holds the backend-neutral query model used by the read
// services: query clauses, sorting, pagination and result pages.
package search

// Query is a clause understood by a search backend. A nil Query means an
// unfiltered scan of the index.
type Query interface {
	isQuery()
}

// FuzzinessAuto lets the backend pick the edit distance from the term length.
const FuzzinessAuto = "AUTO"

type Operator string

const (
	OperatorOr  Operator = "or"
	OperatorAnd Operator = "and"
)

// Match is an analyzed full-text match on a single field.
type Match struct {
	Field     string
	Text      string
	Fuzziness string
	Operator  Operator
}

// MultiMatch runs an analyzed match across several fields. Fields may carry a
// boost suffix such as "title^3".
type MultiMatch struct {
	Fields    []string
	Text      string
	Fuzziness string
}

// MatchPhrase matches the text as an exact phrase.
type MatchPhrase struct {
	Field string
	Text  string
}

// Term is an exact, non-analyzed match.
type Term struct {
	Field string
	Value string
}

// IDs matches documents by their identifiers.
type IDs struct {
	Values []string
}

// Bool combines clauses. With only Should clauses, MinimumShouldMatch
// decides how many must hold.
type Bool struct {
	Must               []Query
	Should             []Query
	MinimumShouldMatch int
}

func (Match) isQuery()       {}
func (MultiMatch) isQuery()  {}
func (MatchPhrase) isQuery() {}
func (Term) isQuery()        {}
func (IDs) isQuery()         {}
func (Bool) isQuery()        {}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField orders results by a document field.
type SortField struct {
	Field     string
	Direction SortDirection
}

func (s SortField) String() string {
	return s.Field + ":" + string(s.Direction)
}

// TextSearch is a free-text search over one index. Blank Text lists the
// index unfiltered.
type TextSearch struct {
	Text string
	Page PageRequest
}
