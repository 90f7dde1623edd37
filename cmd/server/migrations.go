package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/terminal-auth/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

const (
	migrateUp      = "up"
	migrateDown    = "down"
	migrateStatus  = "status"
	migrateVersion = "version"
)

var errUnknownMigrationCommand = errors.New("unknown migration command")

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf forwards goose failures at ERROR. It does not exit; the failure is
// returned to the caller by the goose function that produced it.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func validateMigrationCommand(command string) error {
	switch command {
	case migrateUp, migrateDown, migrateStatus, migrateVersion:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected up, down, status or version)", errUnknownMigrationCommand, command)
	}
}

// runMigrations executes one goose command against the embedded migrations.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if err := validateMigrationCommand(command); err != nil {
		return err
	}

	log := logger.With(
		"correlation_id", uuid.New().String(),
		"migration_command", command,
	)

	goose.SetBaseFS(postgres.Migrations)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	start := time.Now()
	log.Info("running migrations")

	var err error
	switch command {
	case migrateUp:
		err = goose.UpContext(ctx, db, postgres.MigrationsDir)
	case migrateDown:
		err = goose.DownContext(ctx, db, postgres.MigrationsDir)
	case migrateStatus:
		err = goose.StatusContext(ctx, db, postgres.MigrationsDir)
	case migrateVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			log.Info("current migration version", "version", version)
		}
	}
	if err != nil {
		log.Error("migration failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migrations finished", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	return parsedURL.Redacted()
}
