package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"texturetool/internal/gallery"
	"texturetool/internal/session"
	"texturetool/internal/tui"
)

var (
	exportScope  string
	exportSearch string
	exportBy     string
	exportSelect int
	exportProbe  bool
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <archive.xbt> <report.pdf>",
	Short: "Write a PDF gallery of an archive's textures",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]
		scope, err := gallery.ParseExportScope(exportScope)
		if err != nil {
			return err
		}

		a, err := newTaskApp()
		if err != nil {
			return err
		}
		defer a.close()

		g, err := a.loadGallery(cmd.Context(), input, exportProbe)
		if err != nil {
			return err
		}
		if exportSearch != "" {
			if _, err := applySearch(g, exportSearch, exportBy); err != nil {
				return err
			}
		}
		if exportSelect > 0 && !g.Select(exportSelect-1) {
			return fmt.Errorf("--select %d is out of range (1-%d)", exportSelect, g.Len())
		}

		records := g.ExportRecords(scope)
		if len(records) == 0 {
			return fmt.Errorf("nothing to export for scope %s", scope)
		}

		a.renderer.Logf("[INFO] Exporting %d textures to PDF: %s", len(records), output)
		err = a.runTask(cmd.Context(), "PDF Export", func(ctx context.Context) error {
			return gallery.ExportPDF(output, gallery.Report{
				Source:  filepath.Base(input),
				Title:   "Kodi TextureTool Report",
				Records: records,
				Progress: func(percent int) {
					a.session.Publish(session.Update{Percent: percent, Status: fmt.Sprintf("Exporting PDF... %d%%", percent)})
				},
			})
		})
		if err != nil {
			a.renderer.Logf("[ERROR] PDF export failed: %v", err)
			return err
		}
		a.renderer.Logf("[INFO] PDF report saved: %s", output)

		abs, _ := filepath.Abs(output)
		fmt.Fprintln(os.Stdout, tui.RenderSummary([]tui.SummaryRow{
			{Label: "Scope", Value: scope.String()},
			{Label: "Textures", Value: fmt.Sprintf("%d", len(records))},
			{Label: "Report", Value: abs},
		}))
		a.openIfEnabled(a.store.Prefs().OpenPDFOnComplete, abs)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportScope, "scope", "all", "records to export: all, filtered or selected")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "search query used by --scope filtered")
	exportCmd.Flags().StringVar(&exportBy, "by", "filename", "search criterion: filename, index or dimensions")
	exportCmd.Flags().IntVar(&exportSelect, "select", 0, "1-based record used by --scope selected")
	exportCmd.Flags().BoolVar(&exportProbe, "probe", false, "read real dimensions from the cached images when missing")
	rootCmd.AddCommand(exportCmd)
}
