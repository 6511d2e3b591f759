package gallery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]int{
		"zeta.PNG":          10,
		"sub/alpha.jpg":     20,
		"sub/deep/mid.jpeg": 30,
		"icon.gif":          40,
		"tex.edds":          50,
		"readme.txt":        60,
		"archive.xbt":       70,
	}
	for name, size := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	}

	records, err := ScanDir(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, rec := range records {
		names = append(names, rec.Filename)
		assert.Equal(t, NotAvailable, rec.Dimensions)
		assert.FileExists(t, rec.Path)
	}
	assert.Equal(t, []string{"alpha.jpg", "icon.gif", "mid.jpeg", "tex.edds", "zeta.PNG"}, names)

	assert.Equal(t, "JPG", records[0].Format)
	assert.Equal(t, int64(20), records[0].Size)
	assert.Equal(t, "PNG", records[4].Format)
	assert.Equal(t, "EDDS", records[3].Format)
}

func TestScanDirMissing(t *testing.T) {
	_, err := ScanDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScanDirEmpty(t *testing.T) {
	records, err := ScanDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, records)
}
