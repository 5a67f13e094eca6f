// Serve command runs the HTTP server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/internal/server"
	"github.com/mesh-intelligence/taskdesk/internal/service"
	"github.com/mesh-intelligence/taskdesk/internal/sqlite"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the taskdesk HTTP server",
	Long: `Serve starts the HTTP API on the configured listen address.

Example:
  taskdesk serve
  taskdesk serve --listen :9090 --data-dir /var/lib/taskdesk`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return types.ErrJWTSecretEmpty
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	backend := sqlite.NewBackend()
	if err := backend.Open(cfg); err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	auth := service.NewAuthService(backend.Users(), hasher, tokens)
	tasks := service.NewLoggingTaskService(service.NewTaskService(backend.Tasks()), log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(tasks, auth, log).Run(ctx, cfg.Listen)
}
