package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/husseinbouik/task-manager-app-backend/migrations"
	"github.com/pressly/goose/v3"
)

// runMigrations applies all pending schema migrations from the embedded
// migration files. It is safe to run on every startup; goose tracks the
// applied version in the database.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("database migrations applied", "version", version)
	return nil
}
