package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"texturetool/internal/gallery"
	"texturetool/internal/session"
	"texturetool/internal/tui"
)

var compileDupeCheck bool

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <input-dir> <archive.xbt>",
	Short: "Pack a folder of images into an .xbt archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]
		if info, err := os.Stat(input); err != nil {
			return err
		} else if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", input)
		}

		a, err := newTaskApp()
		if err != nil {
			return err
		}
		defer a.close()

		started := time.Now()
		err = a.runTask(cmd.Context(), "Compile", func(ctx context.Context) error {
			return a.session.Compile(ctx, session.CompileRequest{Input: input, Output: output, DupeCheck: compileDupeCheck})
		})
		if err != nil {
			return err
		}

		size := "N/A"
		if st, statErr := os.Stat(output); statErr == nil {
			size = gallery.FormatSize(st.Size())
		}
		abs, _ := filepath.Abs(output)
		fmt.Fprintln(os.Stdout, tui.RenderSummary([]tui.SummaryRow{
			{Label: "Input folder", Value: input},
			{Label: "Archive", Value: abs},
			{Label: "Archive size", Value: size},
			{Label: "Elapsed", Value: time.Since(started).Round(time.Millisecond).String()},
		}))
		a.openIfEnabled(a.store.Prefs().OpenCompileOnComplete, filepath.Dir(abs))
		return nil
	},
}

func init() {
	compileCmd.Flags().BoolVar(&compileDupeCheck, "dupecheck", false, "let the compiler skip duplicate images")
	rootCmd.AddCommand(compileCmd)
}
