package gallery

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/woozymasta/edds"

	"texturetool/pkg/imgutil"
)

type ExportScope int

const (
	ScopeAll ExportScope = iota
	ScopeFiltered
	ScopeSelected
)

func (s ExportScope) String() string {
	switch s {
	case ScopeFiltered:
		return "filtered"
	case ScopeSelected:
		return "selected"
	default:
		return "all"
	}
}

func ParseExportScope(s string) (ExportScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "filtered", "search":
		return ScopeFiltered, nil
	case "selected", "current":
		return ScopeSelected, nil
	}
	return ScopeAll, fmt.Errorf("unknown export scope %q", s)
}

// ExportRecords returns the records covered by scope.
func (g *Gallery) ExportRecords(scope ExportScope) []Record {
	switch scope {
	case ScopeFiltered:
		return g.SearchResults()
	case ScopeSelected:
		if rec, _, ok := g.Current(); ok {
			return []Record{rec}
		}
		return nil
	default:
		return g.Records()
	}
}

const (
	pageMargin   = 15.0
	gridCols     = 3
	gridRows     = 3
	perPage      = gridCols * gridRows
	thumbSize    = 46.0
	headerHeight = 12.0
	footerHeight = 12.0
)

type Report struct {
	Source  string
	Title   string
	Records []Record
	Created time.Time
	// Progress receives strictly increasing percentages.
	Progress func(percent int)
}

// ExportPDF writes a title page followed by a 3x3 thumbnail grid per page.
// Records with unknown dimensions get them from the decoded thumbnail.
func ExportPDF(path string, report Report) error {
	if len(report.Records) == 0 {
		return fmt.Errorf("export %s: no records", path)
	}
	if report.Created.IsZero() {
		report.Created = time.Now()
	}
	if report.Title == "" {
		report.Title = "Texture Report"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(report.Title, true)
	pdf.SetCreator("ktt", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerHeight)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(122, 130, 145)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	progress := newThrottle(report.Progress)
	writeTitlePage(pdf, report)

	pageW, pageH := pdf.GetPageSize()
	cellW := (pageW - 2*pageMargin) / gridCols
	cellH := (pageH - 2*pageMargin - headerHeight - footerHeight) / gridRows
	source := filepath.Base(report.Source)

	for i, rec := range report.Records {
		slot := i % perPage
		if slot == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(46, 52, 64)
			pdf.CellFormat(0, headerHeight-4, fmt.Sprintf("%s - %s", report.Title, source), "B", 1, "L", false, 0, "")
		}

		x := pageMargin + float64(slot%gridCols)*cellW
		y := pageMargin + headerHeight + float64(slot/gridCols)*cellH
		writeCell(pdf, rec, i+1, x, y, cellW, cellH)

		progress.report((i + 1) * 100 / len(report.Records))
		if pdf.Err() {
			return fmt.Errorf("export %s: %w", path, pdf.Error())
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

func writeTitlePage(pdf *fpdf.Fpdf, report Report) {
	pdf.AddPage()
	pdf.SetY(80)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(46, 52, 64)
	pdf.CellFormat(0, 14, report.Title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(76, 86, 106)
	lines := []string{
		"Source File: " + filepath.Base(report.Source),
		fmt.Sprintf("Total Images: %d", len(report.Records)),
		"Date: " + report.Created.Format("2006-01-02 15:04"),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, line, "", 1, "C", false, 0, "")
	}
}

func writeCell(pdf *fpdf.Fpdf, rec Record, index int, x, y, w, h float64) {
	pdf.SetDrawColor(216, 222, 233)
	pdf.Rect(x+2, y+2, w-4, h-4, "D")

	thumbX := x + (w-thumbSize)/2
	thumbY := y + 5
	if img, err := loadThumbnail(rec.Path); err == nil {
		if rec.Dimensions == NotAvailable {
			b := img.Bounds()
			rec.Dimensions = FormatDimensions(b.Dx(), b.Dy())
		}
		placeImage(pdf, rec.Path, img, thumbX, thumbY)
	} else {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(122, 130, 145)
		pdf.SetXY(thumbX, thumbY+thumbSize/2-3)
		pdf.CellFormat(thumbSize, 6, "No preview", "", 0, "C", false, 0, "")
	}

	pdf.SetXY(x+4, thumbY+thumbSize+2)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(46, 52, 64)
	pdf.CellFormat(w-8, 4.5, fitText(pdf, rec.Filename, w-8), "", 2, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7.5)
	pdf.SetTextColor(76, 86, 106)
	pdf.CellFormat(w-8, 4, fmt.Sprintf("Index: %d", index), "", 2, "C", false, 0, "")
	pdf.CellFormat(w-8, 4, "Dimensions: "+pixelDimensions(rec.Dimensions), "", 2, "C", false, 0, "")
	pdf.CellFormat(w-8, 4, "Format: "+rec.Format, "", 2, "C", false, 0, "")
}

func placeImage(pdf *fpdf.Fpdf, name string, img image.Image, x, y float64) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return
	}
	info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if info == nil || pdf.Err() {
		return
	}

	iw, ih := info.Width(), info.Height()
	if iw <= 0 || ih <= 0 {
		return
	}
	scale := min(thumbSize/iw, thumbSize/ih)
	dw, dh := iw*scale, ih*scale
	pdf.ImageOptions(name, x+(thumbSize-dw)/2, y+(thumbSize-dh)/2, dw, dh, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func loadThumbnail(path string) (image.Image, error) {
	kind, err := imgutil.SniffFile(path)
	if err != nil {
		return nil, err
	}
	if kind == imgutil.KindDDS {
		return edds.Read(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func pixelDimensions(dims string) string {
	w, h, ok := ParseDimensions(dims)
	if !ok {
		return dims
	}
	return fmt.Sprintf("%dpx x %dpx", w, h)
}

func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 && pdf.GetStringWidth("..."+string(runes)) > width {
		runes = runes[1:]
	}
	return "..." + string(runes)
}

type throttle struct {
	fn   func(int)
	last int
}

func newThrottle(fn func(int)) *throttle {
	return &throttle{fn: fn, last: -1}
}

func (t *throttle) report(percent int) {
	if t.fn == nil || percent <= t.last {
		return
	}
	t.last = percent
	t.fn(percent)
}
