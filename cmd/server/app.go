package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rotehq/rote-api/internal/config"
	"github.com/rotehq/rote-api/internal/domain/srs"
	"github.com/rotehq/rote-api/internal/platform/logger"
	"github.com/rotehq/rote-api/internal/platform/postgres"
	"github.com/rotehq/rote-api/internal/service/review"
)

// application holds the assembled dependencies for the running server.
type application struct {
	config        *config.Config
	logger        *slog.Logger
	db            *sql.DB
	reviewService review.ReviewService
}

// initializeApp loads configuration, sets up logging, connects to the
// database, applies migrations, and wires the service layer.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cardStore := postgres.NewCardStore(db, appLogger)
	schedulingStore := postgres.NewSchedulingStore(db, appLogger)
	txRunner := postgres.NewTxRunner(db, cardStore, schedulingStore)

	engine := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:      cfg.Scheduler.MinEaseFactor,
		MaxEaseFactor:      cfg.Scheduler.MaxEaseFactor,
		MatureIntervalDays: cfg.Scheduler.MatureIntervalDays,
		OverdueGraceDays:   cfg.Scheduler.OverdueGraceDays,
	}))

	reviewService, err := review.NewReviewService(review.Config{
		CardStore:       cardStore,
		SchedulingStore: schedulingStore,
		TxRunner:        txRunner,
		Engine:          engine,
		Logger:          appLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	return &application{
		config:        cfg,
		logger:        appLogger,
		db:            db,
		reviewService: reviewService,
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
