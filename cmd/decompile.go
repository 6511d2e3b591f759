package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"texturetool/internal/session"
	"texturetool/internal/tui"
)

var decompileCmd = &cobra.Command{
	Use:   "decompile <archive.xbt> <output-dir>",
	Short: "Extract every texture of an .xbt archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]
		if err := os.MkdirAll(output, 0o755); err != nil {
			return err
		}

		a, err := newTaskApp()
		if err != nil {
			return err
		}
		defer a.close()

		started := time.Now()
		err = a.runTask(cmd.Context(), "Decompile", func(ctx context.Context) error {
			return a.session.Decompile(ctx, session.DecompileRequest{Input: input, Output: output})
		})
		if err != nil {
			return err
		}

		abs, _ := filepath.Abs(output)
		fmt.Fprintln(os.Stdout, tui.RenderSummary([]tui.SummaryRow{
			{Label: "Archive", Value: input},
			{Label: "Output folder", Value: abs},
			{Label: "Elapsed", Value: time.Since(started).Round(time.Millisecond).String()},
			{Label: "Log file", Value: a.fileLog.Path()},
		}))
		a.openIfEnabled(a.store.Prefs().OpenDecompileOnComplete, abs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decompileCmd)
}
