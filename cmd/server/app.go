package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/terminal-auth/internal/api"
	"github.com/phrazzld/terminal-auth/internal/config"
	"github.com/phrazzld/terminal-auth/internal/platform/postgres"
	"github.com/phrazzld/terminal-auth/internal/service"
	"github.com/phrazzld/terminal-auth/internal/store"
)

// application holds the dependencies shared by the HTTP layer.
type application struct {
	config         *config.Config
	logger         *slog.Logger
	db             *sql.DB
	authService    service.AuthService
	versionService api.VersionChecker
	healthPinger   api.Pinger
}

// newApplication wires the postgres-backed stores and services around db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	userStore := postgres.NewPostgresUserStore(db)
	transactor := store.NewSQLTransactor(db)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		authService:    service.NewAuthService(userStore, transactor, logger),
		versionService: service.NewVersionService(cfg.Version, logger),
		healthPinger:   db,
	}
}

// Run serves HTTP until ctx is cancelled or a shutdown signal is received.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
		return
	}
	app.logger.Info("database connection closed")
}
