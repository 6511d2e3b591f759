package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texturetool/internal/pipeline"
)

func applyAll(g *Gallery, raws ...string) {
	p := pipeline.NewParser()
	for _, raw := range raws {
		line, _ := p.Parse(raw)
		g.Apply(line)
	}
}

func sampleGallery(t *testing.T) *Gallery {
	t.Helper()
	g := New()
	g.Reset(t.TempDir())
	applyAll(g,
		"Texture: skins/Button_Focus.png",
		"Dimensions: 64x64",
		"Format: DXT5",
		"Texture: skins/background.png",
		"Dimensions: 1920x1080",
		"Format: DXT1",
		"Texture: icons/button_nofocus.png",
		"Dimensions: 64x64",
		"Format: ARGB",
		"Texture: icons/unknown.png",
	)
	return g
}

func TestApplyBuildsRecords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo_bar.png"), make([]byte, 300), 0o644))

	g := New()
	g.Reset(dir)
	applyAll(g, "Texture: foo_bar.png", "Dimensions: 64x64", "Format: DXT1")

	require.Equal(t, 1, g.Len())
	rec := g.Records()[0]
	assert.Equal(t, "foo_bar.png", rec.Filename)
	assert.Equal(t, filepath.Join(dir, "foo_bar.png"), rec.Path)
	assert.Equal(t, "64x64", rec.Dimensions)
	assert.Equal(t, "DXT1", rec.Format)
	assert.Equal(t, int64(300), rec.Size)
}

func TestApplyIgnoresDetailsWithoutRecord(t *testing.T) {
	g := New()
	g.Reset(t.TempDir())
	applyAll(g, "Dimensions: 64x64", "Format: DXT1", "Packing done")
	assert.Zero(t, g.Len())
}

func TestApplyDefaultsToNotAvailable(t *testing.T) {
	g := sampleGallery(t)
	last := g.Records()[g.Len()-1]
	assert.Equal(t, NotAvailable, last.Dimensions)
	assert.Equal(t, NotAvailable, last.Format)
	assert.Zero(t, last.Size)
}

func TestResetClearsRecordsAndSearch(t *testing.T) {
	g := sampleGallery(t)
	_, ok := g.FindFirst(Query{Text: "button"})
	require.True(t, ok)

	g.Reset(t.TempDir())
	assert.Zero(t, g.Len())
	_, total := g.SearchPosition()
	assert.Zero(t, total)
	_, _, ok = g.Current()
	assert.False(t, ok)
}

func TestSearchByFilenameIsCaseInsensitive(t *testing.T) {
	g := sampleGallery(t)
	assert.Equal(t, []int{0, 2}, g.Match(Query{Text: "BUTTON", By: ByFilename}))
}

func TestSearchByIndexIsOneBased(t *testing.T) {
	g := sampleGallery(t)
	assert.Equal(t, []int{1}, g.Match(Query{Text: "2", By: ByIndex}))
	assert.Empty(t, g.Match(Query{Text: "0", By: ByIndex}))
	assert.Empty(t, g.Match(Query{Text: "5", By: ByIndex}))
	assert.Empty(t, g.Match(Query{Text: "two", By: ByIndex}))
}

func TestSearchByDimensionsIsExact(t *testing.T) {
	g := sampleGallery(t)
	assert.Equal(t, []int{0, 2}, g.Match(Query{Text: "64X64", By: ByDimensions}))
	assert.Empty(t, g.Match(Query{Text: "64", By: ByDimensions}))
}

func TestFindNextWraps(t *testing.T) {
	g := sampleGallery(t)
	q := Query{Text: "button"}

	rec, ok := g.FindNext(q)
	require.True(t, ok)
	assert.Equal(t, "skins/Button_Focus.png", rec.Filename)

	rec, _ = g.FindNext(q)
	assert.Equal(t, "icons/button_nofocus.png", rec.Filename)
	pos, total := g.SearchPosition()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 2, total)

	rec, _ = g.FindNext(q)
	assert.Equal(t, "skins/Button_Focus.png", rec.Filename)
}

func TestFindPreviousStartsAtLast(t *testing.T) {
	g := sampleGallery(t)
	q := Query{Text: "button"}

	rec, ok := g.FindPrevious(q)
	require.True(t, ok)
	assert.Equal(t, "icons/button_nofocus.png", rec.Filename)

	rec, _ = g.FindPrevious(q)
	assert.Equal(t, "skins/Button_Focus.png", rec.Filename)

	_, idx, _ := g.Current()
	assert.Equal(t, 0, idx)
}

func TestNewQueryResetsResults(t *testing.T) {
	g := sampleGallery(t)
	g.FindNext(Query{Text: "button"})
	g.FindNext(Query{Text: "button"})

	rec, ok := g.FindNext(Query{Text: "background"})
	require.True(t, ok)
	assert.Equal(t, "skins/background.png", rec.Filename)
	pos, total := g.SearchPosition()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 1, total)
}

func TestEmptyQueryFindsNothing(t *testing.T) {
	g := sampleGallery(t)
	_, ok := g.FindFirst(Query{Text: "   "})
	assert.False(t, ok)
	_, ok = g.FindNext(Query{Text: "missing"})
	assert.False(t, ok)
	assert.Empty(t, g.SearchResults())
}

func TestNavigation(t *testing.T) {
	g := sampleGallery(t)

	assert.False(t, g.Prev())
	assert.True(t, g.Next())
	assert.True(t, g.Last())
	_, idx, _ := g.Current()
	assert.Equal(t, 3, idx)
	assert.False(t, g.Next())

	g.FindFirst(Query{Text: "background"})
	assert.True(t, g.First())
	_, total := g.SearchPosition()
	assert.Zero(t, total, "navigation clears search")
}

func TestDimensionsFilter(t *testing.T) {
	g := New()
	g.Reset(t.TempDir())
	applyAll(g,
		"Texture: a.png", "Dimensions: 128x64",
		"Texture: b.png", "Dimensions: 64x64",
		"Texture: c.png", "Dimensions: weird",
		"Texture: d.png", "Dimensions: 64x32",
		"Texture: e.png",
		"Texture: f.png", "Dimensions: 64x64",
	)
	assert.Equal(t, []string{"64x32", "64x64", "128x64", "weird"}, g.Dimensions())
}

func TestExportRecordsScopes(t *testing.T) {
	g := sampleGallery(t)
	assert.Len(t, g.ExportRecords(ScopeAll), 4)

	g.FindFirst(Query{Text: "64x64", By: ByDimensions})
	assert.Len(t, g.ExportRecords(ScopeFiltered), 2)

	selected := g.ExportRecords(ScopeSelected)
	require.Len(t, selected, 1)
	assert.Equal(t, "skins/Button_Focus.png", selected[0].Filename)
}

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		0:              "0 B",
		-5:             "0 B",
		512:            "512 B",
		1024:           "1 KB",
		1536:           "1.5 KB",
		1048576:        "1 MB",
		5 * 1073741824: "5 GB",
		1099511627776:  "1 TB",
		1234567:        "1.18 MB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatSize(in), "%d", in)
	}
}

func TestParseDimensions(t *testing.T) {
	w, h, ok := ParseDimensions(" 1920 x 1080 ")
	require.True(t, ok)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	_, _, ok = ParseDimensions(NotAvailable)
	assert.False(t, ok)
}

func TestParseCriterionAndScope(t *testing.T) {
	c, err := ParseCriterion("Dimensions")
	require.NoError(t, err)
	assert.Equal(t, ByDimensions, c)
	_, err = ParseCriterion("colour")
	assert.Error(t, err)

	s, err := ParseExportScope("selected")
	require.NoError(t, err)
	assert.Equal(t, ScopeSelected, s)
}
