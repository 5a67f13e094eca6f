// Root command for the taskdesk CLI.
package main

import (
	"github.com/spf13/cobra"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagListen    string
)

var rootCmd = &cobra.Command{
	Use:           "taskdesk",
	Short:         "Taskdesk is a per-user task tracking server",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.taskdesk)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.taskdesk-db)")
	rootCmd.PersistentFlags().StringVar(&flagListen, "listen", "", "listen address (default: :8080)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
}
