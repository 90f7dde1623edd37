package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/phrazzld/terminal-auth/internal/config"
	"github.com/phrazzld/terminal-auth/internal/redact"
)

const databasePingTimeout = 5 * time.Second

// setupAppDatabase opens the connection pool, applies the pool limits from
// cfg and verifies connectivity.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	dsn := cfg.DSN()
	logger.Info("connecting to database", "database_url", maskDatabaseURL(dsn))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error("failed to open database connection", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, databasePingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "error", redact.Error(err))
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns)
	return db, nil
}
