package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/recallapp/recall-api/internal/config"
	"github.com/recallapp/recall-api/internal/domain/srs"
	"github.com/recallapp/recall-api/internal/events"
	"github.com/recallapp/recall-api/internal/platform/gemini"
	"github.com/recallapp/recall-api/internal/platform/postgres"
	"github.com/recallapp/recall-api/internal/scoring"
	"github.com/recallapp/recall-api/internal/service/auth"
	"github.com/recallapp/recall-api/internal/service/dashboard"
	"github.com/recallapp/recall-api/internal/service/review"
	"github.com/recallapp/recall-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	srsService       srs.Service
	jwtService       auth.JWTService
	reviewService    review.ReviewService
	dashboardService dashboard.DashboardService
	eventEmitter     *events.InMemoryEventEmitter
}

// newApplication wires all application components from configuration.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	cardStore := postgres.NewPostgresCardStore(db, logger)
	reviewStore := postgres.NewPostgresReviewStore(db, logger)

	srsService := srs.NewDefaultService()

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	embedder, err := gemini.NewGeminiEmbedder(ctx, logger, cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	scorer := scoring.NewEmbeddingScorer(embedder, logger)

	eventEmitter := events.NewInMemoryEventEmitter(logger)

	reviewService := review.NewReviewService(
		store.NewTransactionRunner(db),
		cardStore,
		reviewStore,
		srsService,
		scorer,
		eventEmitter,
		logger,
	)

	dashboardService := dashboard.NewDashboardService(
		cardStore,
		reviewStore,
		srsService,
		logger,
	)

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		srsService:       srsService,
		jwtService:       jwtService,
		reviewService:    reviewService,
		dashboardService: dashboardService,
		eventEmitter:     eventEmitter,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
