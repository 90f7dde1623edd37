package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/terminal-auth/internal/domain"
	"github.com/phrazzld/terminal-auth/internal/platform/logger"
	"github.com/phrazzld/terminal-auth/internal/redact"
	"github.com/phrazzld/terminal-auth/internal/store"
)

// loginUniqueConstraint is the constraint created by the users migration.
const loginUniqueConstraint = "users_login_key"

const (
	insertUserQuery = `
		INSERT INTO users (login, password, mexc_api_key, mexc_api_secret)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	selectUserByLoginQuery = `
		SELECT id, login, password, mexc_api_key, mexc_api_secret, created_at
		FROM users
		WHERE login = $1`
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db store.DBTX
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// db is either the pool or a transaction; the caller owns its lifecycle.
func NewPostgresUserStore(db store.DBTX) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if user == nil {
		return fmt.Errorf("%w: nil user", store.ErrInvalidEntity)
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := s.db.QueryRowContext(ctx, insertUserQuery,
		user.Login,
		user.Password,
		user.Credentials.APIKey,
		user.Credentials.APISecret,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("unique violation on user insert", slog.String("login", user.Login))
			return MapUniqueViolation(err, loginUniqueConstraint, store.ErrLoginExists)
		}
		log.Error("failed to insert user", slog.String("error", redact.Error(err)))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	log.Debug("user created", slog.Int64("user_id", user.ID), slog.String("login", user.Login))
	return nil
}

// GetByLogin implements store.UserStore.GetByLogin
func (s *PostgresUserStore) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, selectUserByLoginQuery, login).Scan(
		&user.ID,
		&user.Login,
		&user.Password,
		&user.Credentials.APIKey,
		&user.Credentials.APISecret,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContext(ctx).Error("failed to query user by login",
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "get", "query failed", MapError(err))
	}

	return &user, nil
}
