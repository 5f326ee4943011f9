package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/astral-academy/mastery-api/internal/config"
	"github.com/astral-academy/mastery-api/internal/domain/progression"
	"github.com/astral-academy/mastery-api/internal/events"
	"github.com/astral-academy/mastery-api/internal/platform/postgres"
	"github.com/astral-academy/mastery-api/internal/service/progress"
	"github.com/astral-academy/mastery-api/internal/taxonomy"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Taxonomy registry loaded once at startup
	registry *taxonomy.Registry

	// Service interfaces
	calculator      progression.Service
	progressService progress.ProgressService

	// Event infrastructure
	eventEmitter events.EventEmitter
}

// newApplication wires all application dependencies together: database,
// migrations, stores, the taxonomy registry, the progression calculator,
// the progress service, and the event bus.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	appLogger *slog.Logger,
) (*application, error) {
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	// Apply any pending schema migrations before serving traffic.
	if err := postgres.RunMigrations(ctx, db, postgres.MigrateUp); err != nil {
		return nil, err
	}

	taxonomyStore := postgres.NewPostgresTaxonomyStore(db, appLogger)
	registry, err := taxonomy.Load(ctx, taxonomyStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill taxonomy: %w", err)
	}

	ledger := postgres.NewLedger(db, appLogger)
	calculator := progression.NewDefaultService()

	progressService := progress.NewProgressService(
		registry,
		ledger,
		calculator,
		progress.Options{
			MaxCommitRetries: cfg.Progression.MaxCommitRetries,
			HistoryLimit:     cfg.Progression.HistoryLimit,
		},
		appLogger,
	)

	// Wire the in-process event bus so internal emitters (importers, batch
	// jobs) flow through the same orchestrator as the HTTP endpoints.
	eventEmitter := events.NewInMemoryEventEmitter(appLogger)
	eventEmitter.RegisterHandler(progress.NewEventHandler(progressService, appLogger))

	return &application{
		config:          cfg,
		logger:          appLogger,
		db:              db,
		registry:        registry,
		calculator:      calculator,
		progressService: progressService,
		eventEmitter:    eventEmitter,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
