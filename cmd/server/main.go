// Package main implements the entry point for the Mastery API server,
// which tracks learners' skill progression across a skill taxonomy and
// exposes learning-event and progress-summary endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/astral-academy/mastery-api/internal/config"
	"github.com/astral-academy/mastery-api/internal/platform/logger"
	"github.com/astral-academy/mastery-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run schema migrations (up|down|status) and exit",
	)
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("Failed to start mastery-api: %v", err)
	}
}

// run loads configuration, wires the application, and either executes a
// migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()

	if migrateCmd != "" {
		db, err := setupAppDatabase(cfg, appLogger)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				appLogger.Error("Failed to close database connection", "error", closeErr)
			}
		}()

		appLogger.Info("Running migration command", "command", migrateCmd)
		return postgres.RunMigrations(ctx, db, migrateCmd)
	}

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}
