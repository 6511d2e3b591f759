package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"texturetool/internal/config"
	"texturetool/internal/logbuf"
	"texturetool/internal/tui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the bundled tools and their libraries are present",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.renderer.SetDisplay(logbuf.WriterDisplay{W: os.Stdout})
		a.session.Startup(config.AppVersion)
		diag := a.session.Diagnose()

		var rows []tui.SummaryRow
		for _, t := range diag.Tools {
			status := "Passed"
			if !t.Passed() {
				status = "Missing " + strings.Join(t.Missing, ", ")
			}
			rows = append(rows, tui.SummaryRow{Label: t.Tool.String(), Value: status})
		}
		rows = append(rows, tui.SummaryRow{Label: "Log file", Value: a.fileLog.Path()})
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		if !diag.Passed() {
			return errors.New("doctor found missing files")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
