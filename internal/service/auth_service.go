package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/terminal-auth/internal/domain"
	"github.com/phrazzld/terminal-auth/internal/redact"
	"github.com/phrazzld/terminal-auth/internal/store"
)

// RegisterInput is the data needed to register a terminal user.
type RegisterInput struct {
	Login     string
	Password  string
	APIKey    string
	APISecret string
}

// AuthService provides registration and login for terminal users.
type AuthService interface {
	// Register creates a user and returns it with its exchange credentials.
	// Returns a *ValidationError, ErrLoginTaken or ErrConstraintConflict.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login authenticates by exact login and password and returns the user.
	// Returns ErrInvalidCredentials or ErrCredentialsNotFound.
	Login(ctx context.Context, login, password string) (*domain.User, error)
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore store.UserStore, transactor store.Transactor, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		logger:     logger.With("component", "auth_service"),
	}
}

// Ensure AuthServiceImpl implements AuthService interface
var _ AuthService = (*AuthServiceImpl)(nil)

func validateRegistration(in RegisterInput) error {
	if err := domain.ValidateLogin(in.Login); err != nil {
		return NewValidationError("login", err)
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return NewValidationError("password", err)
	}
	if in.APIKey == "" {
		return NewValidationError("mexc_api_key", domain.ErrEmptyAPIKey)
	}
	if in.APISecret == "" {
		return NewValidationError("mexc_api_secret", domain.ErrEmptyAPISecret)
	}
	return nil
}

// Register implements AuthService.Register.
//
// The availability check and the insert share one transaction. A
// uniqueness violation on insert means another request won the race: the
// transaction is rolled back and the login is looked up once more to tell a
// taken login from any other constraint.
func (s *AuthServiceImpl) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := validateRegistration(in); err != nil {
		s.logger.Debug("registration rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}

	user := &domain.User{
		Login:       in.Login,
		Password:    in.Password,
		Credentials: domain.ExchangeCredentials{APIKey: in.APIKey, APISecret: in.APISecret},
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		existing, err := txStore.GetByLogin(ctx, user.Login)
		switch {
		case err == nil && existing != nil:
			return ErrLoginTaken
		case err != nil && !errors.Is(err, store.ErrUserNotFound):
			return fmt.Errorf("failed to check login availability: %w", err)
		}

		return txStore.Create(ctx, user)
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrLoginTaken):
		s.logger.Debug("login already taken", slog.String("login", user.Login))
		return nil, ErrLoginTaken
	case store.IsDuplicateError(err):
		return nil, s.resolveDuplicate(ctx, user.Login)
	default:
		s.logger.Error("failed to register user",
			slog.String("login", user.Login),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("login", user.Login))
	return user, nil
}

// resolveDuplicate classifies a uniqueness violation that survived the
// in-transaction availability check.
func (s *AuthServiceImpl) resolveDuplicate(ctx context.Context, login string) error {
	_, err := s.userStore.GetByLogin(ctx, login)
	switch {
	case err == nil:
		s.logger.Debug("login taken by concurrent registration", slog.String("login", login))
		return ErrLoginTaken
	case errors.Is(err, store.ErrUserNotFound):
		s.logger.Warn("uniqueness violation without a matching login", slog.String("login", login))
		return ErrConstraintConflict
	default:
		s.logger.Error("failed to re-check login after uniqueness violation",
			slog.String("login", login),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to re-check login: %w", err)
	}
}

// Login implements AuthService.Login.
func (s *AuthServiceImpl) Login(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userStore.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown user", slog.String("login", login))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login",
			slog.String("login", login),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Password != password {
		s.logger.Debug("login attempt with wrong password", slog.String("login", login))
		return nil, ErrInvalidCredentials
	}

	if !user.Credentials.IsComplete() {
		s.logger.Warn("user has no exchange credentials", slog.Int64("user_id", user.ID))
		return nil, ErrCredentialsNotFound
	}

	s.logger.Debug("user logged in", slog.Int64("user_id", user.ID))
	return user, nil
}
