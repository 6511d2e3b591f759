package gallery

import (
	"cmp"
	"slices"

	"texturetool/internal/pipeline"
)

// Gallery holds the records of the current Get Info run. It is owned by the
// goroutine that consumes supervisor events and is not safe for concurrent
// use.
type Gallery struct {
	cacheDir string
	records  []Record
	current  int
	search   searchState
}

func New() *Gallery {
	return &Gallery{current: -1, search: newSearchState()}
}

// Reset drops every record and points new records at cacheDir.
func (g *Gallery) Reset(cacheDir string) {
	g.cacheDir = cacheDir
	g.records = nil
	g.current = -1
	g.search = newSearchState()
}

func (g *Gallery) CacheDir() string {
	return g.cacheDir
}

// Apply folds a classified line into the records. It reports whether a record
// was created or changed.
func (g *Gallery) Apply(line pipeline.OutputLine) bool {
	switch line.Kind {
	case pipeline.LineRecordStart:
		if g.cacheDir == "" {
			return false
		}
		g.records = append(g.records, NewRecord(g.cacheDir, line.Filename))
		if g.current < 0 {
			g.current = 0
		}
		return true
	case pipeline.LineRecordDetail:
		if len(g.records) == 0 {
			return false
		}
		last := &g.records[len(g.records)-1]
		switch line.Field {
		case pipeline.FieldDimensions:
			last.Dimensions = line.Value
		case pipeline.FieldFormat:
			last.Format = line.Value
		default:
			return false
		}
		return true
	}
	return false
}

// Add appends records, used by the fallback scan.
func (g *Gallery) Add(records ...Record) {
	g.records = append(g.records, records...)
	if g.current < 0 && len(g.records) > 0 {
		g.current = 0
	}
}

func (g *Gallery) Len() int {
	return len(g.records)
}

func (g *Gallery) Records() []Record {
	return slices.Clone(g.records)
}

// Update replaces the record at i, used after probing.
func (g *Gallery) Update(i int, rec Record) {
	if i >= 0 && i < len(g.records) {
		g.records[i] = rec
	}
}

func (g *Gallery) Current() (Record, int, bool) {
	if g.current < 0 || g.current >= len(g.records) {
		return Record{}, -1, false
	}
	return g.records[g.current], g.current, true
}

func (g *Gallery) Select(i int) bool {
	if i < 0 || i >= len(g.records) {
		return false
	}
	g.current = i
	return true
}

// Navigation clears any active search.

func (g *Gallery) First() bool {
	g.ResetSearch()
	return g.Select(0)
}

func (g *Gallery) Last() bool {
	g.ResetSearch()
	return g.Select(len(g.records) - 1)
}

func (g *Gallery) Next() bool {
	g.ResetSearch()
	return g.Select(g.current + 1)
}

func (g *Gallery) Prev() bool {
	g.ResetSearch()
	return g.Select(g.current - 1)
}

// Dimensions lists the distinct known dimensions ordered by width then
// height. Values that do not parse sort last.
func (g *Gallery) Dimensions() []string {
	seen := make(map[string]struct{})
	var dims []string
	for _, rec := range g.records {
		if rec.Dimensions == NotAvailable || rec.Dimensions == "" {
			continue
		}
		if _, ok := seen[rec.Dimensions]; ok {
			continue
		}
		seen[rec.Dimensions] = struct{}{}
		dims = append(dims, rec.Dimensions)
	}

	slices.SortStableFunc(dims, func(a, b string) int {
		aw, ah, aok := ParseDimensions(a)
		bw, bh, bok := ParseDimensions(b)
		switch {
		case aok && !bok:
			return -1
		case !aok && bok:
			return 1
		case !aok && !bok:
			return cmp.Compare(a, b)
		}
		if c := cmp.Compare(aw, bw); c != 0 {
			return c
		}
		return cmp.Compare(ah, bh)
	})
	return dims
}
