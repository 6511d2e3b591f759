package gallery

import (
	"fmt"
	"strconv"
	"strings"
)

type Criterion int

const (
	ByFilename Criterion = iota
	ByIndex
	ByDimensions
)

func (c Criterion) String() string {
	switch c {
	case ByIndex:
		return "index"
	case ByDimensions:
		return "dimensions"
	default:
		return "filename"
	}
}

func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "filename", "name":
		return ByFilename, nil
	case "index":
		return ByIndex, nil
	case "dimensions", "dims":
		return ByDimensions, nil
	}
	return ByFilename, fmt.Errorf("unknown search criterion %q", s)
}

type Query struct {
	Text string
	By   Criterion
}

func (q Query) normalized() Query {
	return Query{Text: strings.TrimSpace(q.Text), By: q.By}
}

type searchState struct {
	last    Query
	results []int
	pos     int
}

func newSearchState() searchState {
	return searchState{pos: -1}
}

func (g *Gallery) ResetSearch() {
	g.search = newSearchState()
}

// SearchPosition reports the 1-based position in the active result list and
// its length.
func (g *Gallery) SearchPosition() (int, int) {
	return g.search.pos + 1, len(g.search.results)
}

func (g *Gallery) SearchResults() []Record {
	out := make([]Record, 0, len(g.search.results))
	for _, i := range g.search.results {
		out = append(out, g.records[i])
	}
	return out
}

// Match runs q and returns the matching record indexes without moving the
// selection.
func (g *Gallery) Match(q Query) []int {
	q = q.normalized()
	if q.Text == "" {
		return nil
	}

	var results []int
	switch q.By {
	case ByIndex:
		n, err := strconv.Atoi(q.Text)
		if err == nil && n >= 1 && n <= len(g.records) {
			results = append(results, n-1)
		}
	case ByDimensions:
		for i, rec := range g.records {
			if strings.EqualFold(q.Text, rec.Dimensions) {
				results = append(results, i)
			}
		}
	default:
		needle := strings.ToLower(q.Text)
		for i, rec := range g.records {
			if strings.Contains(strings.ToLower(rec.Filename), needle) {
				results = append(results, i)
			}
		}
	}
	return results
}

// perform runs q unless it is already the active query.
func (g *Gallery) perform(q Query) bool {
	q = q.normalized()
	if len(g.records) == 0 || q.Text == "" {
		g.ResetSearch()
		return false
	}
	if q != g.search.last {
		g.search = searchState{last: q, results: g.Match(q), pos: -1}
	}
	if len(g.search.results) == 0 {
		g.search.pos = -1
		return false
	}
	return true
}

func (g *Gallery) FindFirst(q Query) (Record, bool) {
	if !g.perform(q) {
		return Record{}, false
	}
	g.search.pos = 0
	return g.jump()
}

// FindNext advances through the results, wrapping at the end. A new query
// starts at its first match.
func (g *Gallery) FindNext(q Query) (Record, bool) {
	if len(g.search.results) == 0 || q.normalized() != g.search.last {
		if !g.perform(q) {
			return Record{}, false
		}
		g.search.pos = -1
	}
	n := len(g.search.results)
	g.search.pos = (g.search.pos + 1) % n
	return g.jump()
}

// FindPrevious steps back through the results, wrapping at the start. A new
// query starts at its last match.
func (g *Gallery) FindPrevious(q Query) (Record, bool) {
	if len(g.search.results) == 0 || q.normalized() != g.search.last {
		if !g.perform(q) {
			return Record{}, false
		}
		g.search.pos = 0
	}
	n := len(g.search.results)
	g.search.pos = (g.search.pos - 1 + n) % n
	return g.jump()
}

func (g *Gallery) jump() (Record, bool) {
	if g.search.pos < 0 || g.search.pos >= len(g.search.results) {
		return Record{}, false
	}
	g.current = g.search.results[g.search.pos]
	return g.records[g.current], true
}
