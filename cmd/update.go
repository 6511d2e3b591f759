package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"texturetool/internal/config"
	"texturetool/internal/logbuf"
	"texturetool/internal/update"
)

var updateURL string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.renderer.SetDisplay(logbuf.WriterDisplay{W: os.Stdout})

		url := updateURL
		if url == "" {
			url = a.cfg.UpdateURL
		}
		if url == "" {
			url = a.store.Prefs().DevUpdateURL
		}

		res, err := a.session.CheckForUpdate(cmd.Context(), update.NewChecker(), url, config.AppVersion)
		if err != nil {
			return err
		}
		if !res.Available {
			return nil
		}

		dl, err := res.DownloadURL()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nVersion %s is available: %s\n\n", res.Manifest.LatestVersion, dl)
		for _, line := range update.ChangelogLines(res.Manifest.Changelog) {
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateURL, "url", "", "version.json to check instead of the configured one")
	rootCmd.AddCommand(updateCmd)
}
