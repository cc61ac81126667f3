// Package main implements the entry point for the Recall API server,
// which schedules spaced-repetition flashcard reviews and scores submitted
// answers against reference answers.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/recallapp/recall-api/internal/config"
	"github.com/recallapp/recall-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires the application, applies migrations, and
// serves HTTP until a shutdown signal arrives.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	if err := app.runMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
