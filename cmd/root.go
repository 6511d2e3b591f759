package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	envFile     string
	verbose     bool
	noTUI       bool
	showConsole bool
)

var rootCmd = &cobra.Command{
	Use:           "ktt",
	Short:         "ktt - compile, decompile and inspect Kodi .xbt texture archives",
	Long:          "ktt drives the bundled TextureCompiler and TextureExtractor tools and turns their output into logs, texture listings and PDF reports.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file with KTT_* settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics on stderr")
	rootCmd.PersistentFlags().BoolVar(&noTUI, "no-tui", false, "print the log instead of the progress view")
	rootCmd.PersistentFlags().BoolVar(&showConsole, "show-console", false, "show the console window of the native tools (Windows)")
}
