// Package main implements the entry point for the task manager API server:
// an authenticated task CRUD service with asynchronous creation
// notifications processed by an in-process worker pool.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/husseinbouik/task-manager-app-backend/internal/config"
	"github.com/husseinbouik/task-manager-app-backend/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.start()

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the assembled application and any initialization error.
func initializeApp() (*application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Log configuration details using structured logging
	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish database connection and apply pending migrations
	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, err
	}

	// Wire application dependencies
	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return nil, err
	}

	return app, nil
}
