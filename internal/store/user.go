package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/terminal-auth/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a new user and fills in the server-assigned ID and
	// CreatedAt. Returns ErrLoginExists when the login is already taken,
	// ErrDuplicate for any other uniqueness violation, and ErrInvalidEntity
	// when the user fails domain validation.
	Create(ctx context.Context, user *domain.User) error

	// GetByLogin retrieves a user by exact (case-sensitive) login.
	// Returns ErrUserNotFound if the user does not exist.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)

	// WithTx returns a UserStore bound to the provided transaction.
	// The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
