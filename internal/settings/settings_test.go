package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg", FileName)
	s, err := Open(path, dir)
	require.NoError(t, err)
	return s, path
}

func TestOpenCreatesFile(t *testing.T) {
	s, path := openTemp(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Recent]")
	assert.Equal(t, DefaultPrefs(), s.Prefs())
	for _, g := range RecentGroups {
		assert.Empty(t, s.Recent(g))
	}
}

func TestAddRecentMovesToFrontAndCaps(t *testing.T) {
	s, path := openTemp(t)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.AddRecent(DecompileFiles, fmt.Sprintf(`C:\skins\t%d.xbt`, i)))
	}
	require.NoError(t, s.AddRecent(DecompileFiles, `C:\skins\t5.xbt`))

	got := s.Recent(DecompileFiles)
	require.Len(t, got, MaxRecent)
	assert.Equal(t, `C:\skins\t5.xbt`, got[0])
	assert.Equal(t, `C:\skins\t9.xbt`, got[1])
	assert.NotContains(t, got, `C:\skins\t0.xbt`)
	assert.NotContains(t, got, `C:\skins\t1.xbt`)

	reopened, err := Open(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, got, reopened.Recent(DecompileFiles))
	assert.Empty(t, reopened.Recent(CompileFiles))
}

func TestClearRecent(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.AddRecent(CompileFolders, "/tmp/a"))
	require.NoError(t, s.AddRecent(CompileFiles, "/tmp/a.xbt"))
	require.NoError(t, s.ClearRecent(CompileFolders))

	reopened, err := Open(path, "")
	require.NoError(t, err)
	assert.Empty(t, reopened.Recent(CompileFolders))
	assert.Equal(t, []string{"/tmp/a.xbt"}, reopened.Recent(CompileFiles))
}

func TestMalformedRecentGroupIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "[Recent]\ncompile_files = not json\ndecompile_files = [\"/a.xbt\", \"/b;c.xbt\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Open(path, dir)
	require.NoError(t, err)
	assert.Empty(t, s.Recent(CompileFiles))
	assert.Equal(t, []string{"/a.xbt", "/b;c.xbt"}, s.Recent(DecompileFiles))
}

func TestPathsFallBackToAppDir(t *testing.T) {
	s, path := openTemp(t)
	appDir := s.Path(CompileInput)
	assert.NotEmpty(t, appDir)

	require.NoError(t, s.SetPath(CompileInput, "/work/skin"))
	assert.Equal(t, "/work/skin", s.Path(CompileInput))

	reopened, err := Open(path, "/app")
	require.NoError(t, err)
	assert.Equal(t, "/work/skin", reopened.Path(CompileInput))
	assert.Equal(t, "/app", reopened.Path(DecompileOutput))
}

func TestPrefsReadPythonStyleBooleans(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "[Settings]\nopen_pdf_on_complete = False\ndecompile_on_top = True\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Open(path, dir)
	require.NoError(t, err)
	prefs := s.Prefs()
	assert.False(t, prefs.OpenPDFOnComplete)
	assert.True(t, prefs.DecompileOnTop)
	assert.True(t, prefs.LogOnTop)
	assert.Equal(t, DefaultUpdateURL, prefs.DevUpdateURL)
}

func TestSet(t *testing.T) {
	s, path := openTemp(t)

	require.NoError(t, s.Set("log_on_top", "false"))
	require.NoError(t, s.Set("dev_update_url", "http://localhost/version.json"))
	assert.ErrorIs(t, s.Set("colour", "blue"), ErrUnknownSetting)
	assert.Error(t, s.Set("log_on_top", "maybe"))

	reopened, err := Open(path, "")
	require.NoError(t, err)
	assert.False(t, reopened.Prefs().LogOnTop)
	assert.Equal(t, "http://localhost/version.json", reopened.Prefs().DevUpdateURL)

	entries := reopened.Entries()
	require.Len(t, entries, 7)
	assert.Equal(t, Entry{Name: "log_on_top", Value: "false"}, entries[4])
}

func TestSaveKeepsForeignSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[Window]\ngeometry = 1410x920\n"), 0o644))

	s, err := Open(path, dir)
	require.NoError(t, err)
	require.NoError(t, s.AddRecent(CompileFiles, "/x.xbt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "geometry")
	assert.Contains(t, string(data), "compile_files")
}

func TestParseRecentGroup(t *testing.T) {
	g, err := ParseRecentGroup("decompile_folders")
	require.NoError(t, err)
	assert.Equal(t, DecompileFolders, g)

	_, err = ParseRecentGroup("nope")
	assert.Error(t, err)
}
