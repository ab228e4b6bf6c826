package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/blattwerk/blattwerk-api/internal/config"
	"github.com/blattwerk/blattwerk-api/internal/generation"
	"github.com/blattwerk/blattwerk-api/internal/platform/openai"
	"github.com/blattwerk/blattwerk-api/internal/platform/postgres"
	"github.com/blattwerk/blattwerk-api/internal/service"
	"github.com/blattwerk/blattwerk-api/internal/service/auth"
	"github.com/blattwerk/blattwerk-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore      store.UserStore
	worksheetStore store.WorksheetStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	generator        generation.Generator
	worksheetService service.WorksheetService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost)
	app.worksheetStore = postgres.NewPostgresWorksheetStore(db, logger)

	app.generator, err = setupGenerator(app)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	app.worksheetService, err = service.NewWorksheetService(
		db,
		app.userStore,
		app.worksheetStore,
		app.generator,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupGenerator assembles the worksheet generator: the deterministic
// template path always works, and a remote generator is layered in front of
// it only when an API key is configured. Remote failures at request time
// never surface to callers; the fallback absorbs them.
func setupGenerator(app *application) (generation.Generator, error) {
	template := generation.NewTemplateGenerator()

	var remote generation.Generator
	if app.config.LLM.RemoteConfigured() {
		client, err := openai.NewGenerator(
			app.logger.With("component", "llm_generator"),
			app.config.LLM,
		)
		if err != nil {
			return nil, err
		}
		remote = client
		app.logger.Info("remote generator enabled", "model", app.config.LLM.ModelName)
	} else {
		app.logger.Info("remote generator disabled, template generation only")
	}

	return generation.NewFallbackGenerator(remote, template, app.logger), nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
