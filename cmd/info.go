package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"texturetool/internal/gallery"
	"texturetool/internal/session"
	"texturetool/internal/tui"
)

var (
	infoSearch string
	infoBy     string
	infoProbe  bool
	infoJSON   bool
	infoDims   bool
)

var infoCmd = &cobra.Command{
	Use:   "info [flags] <archive.xbt>",
	Short: "List the textures of an .xbt archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newTaskApp()
		if err != nil {
			return err
		}
		defer a.close()

		g, err := a.loadGallery(cmd.Context(), args[0], infoProbe)
		if err != nil {
			return err
		}

		records := g.Records()
		if infoSearch != "" {
			if records, err = applySearch(g, infoSearch, infoBy); err != nil {
				return err
			}
		}

		if infoJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		if infoDims {
			for _, d := range g.Dimensions() {
				fmt.Fprintln(os.Stdout, d)
			}
			return nil
		}

		fmt.Fprintln(os.Stdout, renderRecords(g, records))
		fmt.Fprintln(os.Stdout, tui.RenderSummary(infoSummary(g, records)))
		return nil
	},
}

// loadGallery runs Get Info for input and optionally probes real dimensions
// for records the compiler did not describe.
func (a *app) loadGallery(ctx context.Context, input string, probe bool) (*gallery.Gallery, error) {
	err := a.runTask(ctx, "Get Info", func(ctx context.Context) error {
		_, err := a.session.GetInfo(ctx, input)
		return err
	})
	if errors.Is(err, session.ErrNoRecords) {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	if err != nil {
		return nil, err
	}

	g := a.session.Gallery()
	if probe {
		summary, err := g.ProbeMissing(ctx, runtime.NumCPU(), nil)
		if err != nil {
			return nil, err
		}
		a.renderer.Logf("[INFO] Probed %d images (%d failed, %d already known).", summary.Probed, summary.Failed, summary.Skipped)
	}
	return g, nil
}

func applySearch(g *gallery.Gallery, text, by string) ([]gallery.Record, error) {
	criterion, err := gallery.ParseCriterion(by)
	if err != nil {
		return nil, err
	}
	if _, ok := g.FindFirst(gallery.Query{Text: text, By: criterion}); !ok {
		return nil, fmt.Errorf("no textures match %s %q", criterion, text)
	}
	return g.SearchResults(), nil
}

func renderRecords(g *gallery.Gallery, records []gallery.Record) string {
	index := make(map[string]int, g.Len())
	for i, rec := range g.Records() {
		index[rec.Path] = i + 1
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		gpu := "N/A"
		if n := gallery.EstimatedRecordBytes(rec); n > 0 {
			gpu = gallery.FormatSize(int64(n))
		}
		rows = append(rows, []string{
			strconv.Itoa(index[rec.Path]),
			rec.Filename,
			rec.Dimensions,
			rec.Format,
			gallery.FormatSize(rec.Size),
			gpu,
		})
	}
	return tui.RenderTable([]string{"#", "Filename", "Dimensions", "Format", "Size", "GPU"}, rows, 48)
}

func infoSummary(g *gallery.Gallery, records []gallery.Record) []tui.SummaryRow {
	var disk, gpu int64
	compressed := 0
	for _, rec := range records {
		disk += rec.Size
		gpu += int64(gallery.EstimatedRecordBytes(rec))
		if gallery.IsCompressed(rec.Format) {
			compressed++
		}
	}
	return []tui.SummaryRow{
		{Label: "Textures", Value: fmt.Sprintf("%d of %d", len(records), g.Len())},
		{Label: "Block compressed", Value: strconv.Itoa(compressed)},
		{Label: "Size on disk", Value: gallery.FormatSize(disk)},
		{Label: "Estimated GPU size", Value: gallery.FormatSize(gpu)},
		{Label: "Distinct dimensions", Value: strconv.Itoa(len(g.Dimensions()))},
		{Label: "Image cache", Value: infoDimStyle.Render(g.CacheDir())},
	}
}

var infoDimStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)

func init() {
	infoCmd.Flags().StringVar(&infoSearch, "search", "", "only show textures matching this query")
	infoCmd.Flags().StringVar(&infoBy, "by", "filename", "search criterion: filename, index or dimensions")
	infoCmd.Flags().BoolVar(&infoProbe, "probe", false, "read real dimensions from the cached images when missing")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "print records as JSON")
	infoCmd.Flags().BoolVar(&infoDims, "dimensions", false, "print the distinct dimensions only")
	rootCmd.AddCommand(infoCmd)
}
