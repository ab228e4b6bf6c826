// Package main implements the entry point for the Blattwerk API server,
// which generates German language-learning worksheets for authenticated
// users against a per-user credit balance.
package main

import (
	"context"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/blattwerk/blattwerk-api/internal/config"
	"github.com/blattwerk/blattwerk-api/internal/platform/logger"
	"github.com/blattwerk/blattwerk-api/internal/platform/postgres"
)

func main() {
	// Load a local .env if present; real deployments use the environment.
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, wires every dependency, applies pending schema
// migrations, and starts the HTTP server. It blocks until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"remote_generation", cfg.LLM.RemoteConfigured())

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.RunMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
