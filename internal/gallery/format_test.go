package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/woozymasta/bcn"
)

func TestLookupFormat(t *testing.T) {
	cases := map[string]bcn.Format{
		"DXT1":        bcn.FormatDXT1,
		"dxt5":        bcn.FormatDXT5,
		"DXT5_YCoCg":  bcn.FormatDXT5,
		"ARGB":        bcn.FormatBGRA8,
		"RGBA8 (lin)": bcn.FormatRGBA8,
		"BC5":         bcn.FormatBC5,
	}
	for in, want := range cases {
		got, ok := LookupFormat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := LookupFormat(NotAvailable)
	assert.False(t, ok)
	_, ok = LookupFormat("")
	assert.False(t, ok)
}

func TestEstimatedBytes(t *testing.T) {
	assert.Equal(t, 8, EstimatedBytes("DXT1", 4, 4))
	assert.Equal(t, 32, EstimatedBytes("DXT1", 5, 7))
	assert.Equal(t, 16, EstimatedBytes("DXT5", 4, 4))
	assert.Equal(t, 4, EstimatedBytes("BGRA8", 1, 1))
	assert.Equal(t, 140, EstimatedBytes("ARGB", 5, 7))
	assert.Equal(t, -1, EstimatedBytes("PNG", 4, 4))
	assert.Equal(t, -1, EstimatedBytes("DXT1", 0, 4))

	assert.Equal(t, 16384, EstimatedRecordBytes(Record{Format: "ARGB", Dimensions: "64x64"}))
	assert.Equal(t, -1, EstimatedRecordBytes(Record{Format: "ARGB", Dimensions: NotAvailable}))
}

func TestIsCompressed(t *testing.T) {
	assert.True(t, IsCompressed("DXT3"))
	assert.False(t, IsCompressed("ARGB"))
	assert.False(t, IsCompressed("N/A"))
}
