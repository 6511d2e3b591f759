package gallery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var scanExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".dds":  true,
	".edds": true,
}

// ScanDir walks dir for image files and returns one record per file, sorted
// by filename. Format is the upper-cased extension; dimensions stay N/A.
func ScanDir(ctx context.Context, dir string) ([]Record, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absDir); err != nil {
		return nil, err
	}

	var records []Record
	err = fs.WalkDir(os.DirFS(absDir), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !scanExtensions[ext] {
			return nil
		}

		rec := Record{
			Path:       filepath.Join(absDir, filepath.FromSlash(path)),
			Filename:   d.Name(),
			Dimensions: NotAvailable,
			Format:     strings.ToUpper(strings.TrimPrefix(filepath.Ext(d.Name()), ".")),
		}
		if info, err := d.Info(); err == nil {
			rec.Size = info.Size()
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return records, err
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return strings.Compare(a.Filename, b.Filename)
	})
	return records, nil
}
