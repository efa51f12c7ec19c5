package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/husseinbouik/task-manager-app-backend/internal/config"
	"github.com/husseinbouik/task-manager-app-backend/internal/notify"
	"github.com/husseinbouik/task-manager-app-backend/internal/platform/postgres"
	"github.com/husseinbouik/task-manager-app-backend/internal/service"
	"github.com/husseinbouik/task-manager-app-backend/internal/service/auth"
	"github.com/husseinbouik/task-manager-app-backend/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore

	// Service interfaces
	jwtService  auth.JWTService
	taskService service.TaskService

	// Notification pipeline
	notifyQueue *notify.Queue
	workerPool  *notify.WorkerPool
	dispatcher  *notify.Dispatcher
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize stores
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Initialize the notification pipeline: queue, worker pool, dispatcher
	app.notifyQueue = notify.NewQueue(cfg.Notify.QueueSize, logger)
	app.workerPool = notify.NewWorkerPool(
		app.notifyQueue,
		notify.WorkerPoolConfig{WorkerCount: cfg.Notify.WorkerCount},
		logger,
	)
	app.dispatcher = notify.NewDispatcher(app.notifyQueue, logger)

	// Initialize the task service
	taskRepo := service.NewTaskRepositoryAdapter(app.taskStore, db)
	app.taskService, err = service.NewTaskService(taskRepo, app.dispatcher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// start launches the background components of the application.
func (app *application) start() {
	app.workerPool.Start()
}

// cleanup releases application resources in reverse dependency order:
// the queue stops accepting jobs, the workers drain what remains, and
// finally the database connection closes.
func (app *application) cleanup() {
	app.notifyQueue.Close()
	app.workerPool.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}

	app.logger.Info("application shutdown completed")
}
