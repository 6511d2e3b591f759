package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"texturetool/internal/settings"
	"texturetool/internal/tui"
)

var recentCmd = &cobra.Command{
	Use:   "recent [group]",
	Short: "Show recently used archives and folders",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		groups := settings.RecentGroups
		if len(args) == 1 {
			g, err := settings.ParseRecentGroup(args[0])
			if err != nil {
				return err
			}
			groups = []settings.RecentGroup{g}
		}

		for i, g := range groups {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintln(os.Stdout, recentGroupStyle.Render(g.String()))
			items := a.store.Recent(g)
			if len(items) == 0 {
				fmt.Fprintf(os.Stdout, "  %s\n", recentDimStyle.Render("(No Recent Items)"))
				continue
			}
			for n, item := range items {
				fmt.Fprintf(os.Stdout, "  %s %s\n", recentDimStyle.Render(fmt.Sprintf("%d.", n+1)), item)
			}
		}
		return nil
	},
}

var recentClearCmd = &cobra.Command{
	Use:   "clear <group|all>",
	Short: "Clear a recent list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		groups := settings.RecentGroups
		if args[0] != "all" {
			g, err := settings.ParseRecentGroup(args[0])
			if err != nil {
				return err
			}
			groups = []settings.RecentGroup{g}
		}
		for _, g := range groups {
			if err := a.store.ClearRecent(g); err != nil {
				return err
			}
			a.renderer.Logf("[INFO] Cleared recent list: %s", g)
		}
		return nil
	},
}

var (
	recentGroupStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	recentDimStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(recentCmd)
}
