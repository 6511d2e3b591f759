package gallery

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const NotAvailable = "N/A"

// Record describes one texture extracted from an archive.
type Record struct {
	Path       string `json:"path"`
	Filename   string `json:"filename"`
	Dimensions string `json:"dimensions"`
	Format     string `json:"format"`
	Size       int64  `json:"size"`
}

// NewRecord builds a record for filename inside dir. Size is read from disk
// when the file exists and left at zero otherwise.
func NewRecord(dir, filename string) Record {
	path := filepath.Join(dir, filepath.FromSlash(filename))
	rec := Record{
		Path:       path,
		Filename:   filename,
		Dimensions: NotAvailable,
		Format:     NotAvailable,
	}
	if info, err := os.Stat(path); err == nil {
		rec.Size = info.Size()
	}
	return rec
}

// WidthHeight parses Dimensions.
func (r Record) WidthHeight() (int, int, bool) {
	return ParseDimensions(r.Dimensions)
}

// ParseDimensions reads "WxH".
func ParseDimensions(s string) (int, int, bool) {
	w, h, found := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !found {
		return 0, 0, false
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, false
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}

func FormatDimensions(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with binary units and two decimals at most.
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[unit]
}
