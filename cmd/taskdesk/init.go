// Init command prepares the config and data directories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/internal/sqlite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and storage",
	Long: `Init writes a default config.yaml if none exists and creates the
database schema in the data directory.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backend := sqlite.NewBackend()
	if err := backend.Open(cfg); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := backend.Close(); err != nil {
		return err
	}

	fmt.Printf("Initialized taskdesk storage in %s\n", cfg.DataDir)
	return nil
}
