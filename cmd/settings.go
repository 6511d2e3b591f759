package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"texturetool/internal/settings"
	"texturetool/internal/tui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the persisted preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		var rows []tui.SummaryRow
		for _, e := range a.store.Entries() {
			rows = append(rows, tui.SummaryRow{Label: e.Name, Value: e.Value})
		}
		for _, key := range []settings.PathKey{settings.DecompileInput, settings.DecompileOutput, settings.CompileInput, settings.CompileOutput} {
			rows = append(rows, tui.SummaryRow{Label: string(key), Value: a.store.Path(key)})
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		fmt.Fprintf(os.Stdout, "Config file: %s\n", a.store.File())
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print one preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		for _, e := range a.store.Entries() {
			if e.Name == args[0] {
				fmt.Fprintln(os.Stdout, e.Value)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", settings.ErrUnknownSetting, args[0])
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.Set(args[0], args[1]); err != nil {
			return err
		}
		a.renderer.Logf("[INFO] Setting %s changed to %s", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
