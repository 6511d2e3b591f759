package gallery

import (
	"strings"

	"github.com/woozymasta/bcn"
)

var textureFormats = map[string]bcn.Format{
	"DXT1":       bcn.FormatDXT1,
	"BC1":        bcn.FormatDXT1,
	"DXT3":       bcn.FormatDXT3,
	"BC2":        bcn.FormatDXT3,
	"DXT5":       bcn.FormatDXT5,
	"DXT5_YCOCG": bcn.FormatDXT5,
	"BC3":        bcn.FormatDXT5,
	"BC4":        bcn.FormatBC4,
	"ATI1":       bcn.FormatBC4,
	"BC5":        bcn.FormatBC5,
	"ATI2":       bcn.FormatBC5,
	"ARGB":       bcn.FormatBGRA8,
	"A8R8G8B8":   bcn.FormatBGRA8,
	"BGRA8":      bcn.FormatBGRA8,
	"BGRA":       bcn.FormatBGRA8,
	"RGBA8":      bcn.FormatRGBA8,
	"RGBA":       bcn.FormatRGBA8,
}

// LookupFormat maps a format string reported by the compiler to a pixel
// format. Only the first word is considered, case-insensitively.
func LookupFormat(name string) (bcn.Format, bool) {
	fields := strings.Fields(strings.ToUpper(name))
	if len(fields) == 0 {
		return bcn.FormatUnknown, false
	}
	f, ok := textureFormats[fields[0]]
	return f, ok
}

// EstimatedBytes returns the GPU payload size of the top mip level, or -1
// when the format or dimensions are unknown.
func EstimatedBytes(format string, width, height int) int {
	f, ok := LookupFormat(format)
	if !ok || width <= 0 || height <= 0 {
		return -1
	}

	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	switch f {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocks * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocks * 16
	case bcn.FormatBGRA8, bcn.FormatRGBA8:
		return width * height * 4
	default:
		return -1
	}
}

// EstimatedRecordBytes applies EstimatedBytes to a record.
func EstimatedRecordBytes(rec Record) int {
	w, h, ok := rec.WidthHeight()
	if !ok {
		return -1
	}
	return EstimatedBytes(rec.Format, w, h)
}

func IsCompressed(format string) bool {
	f, ok := LookupFormat(format)
	if !ok {
		return false
	}
	return f != bcn.FormatBGRA8 && f != bcn.FormatRGBA8
}
