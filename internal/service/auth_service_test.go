package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/terminal-auth/internal/domain"
	"github.com/phrazzld/terminal-auth/internal/mocks"
	"github.com/phrazzld/terminal-auth/internal/service"
	"github.com/phrazzld/terminal-auth/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(users store.UserStore) (*service.AuthServiceImpl, *mocks.MockTransactor) {
	tx := &mocks.MockTransactor{}
	return service.NewAuthService(users, tx, discardLogger()), tx
}

func aliceInput() service.RegisterInput {
	return service.RegisterInput{Login: "alice", Password: "secret1", APIKey: "K", APISecret: "S"}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns credentials verbatim", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		svc, tx := newAuthService(users)

		user, err := svc.Register(ctx, aliceInput())
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Login)
		assert.Equal(t, domain.ExchangeCredentials{APIKey: "K", APISecret: "S"}, user.Credentials)
		assert.NotZero(t, user.ID)
		assert.Equal(t, 1, users.Count())
		assert.Equal(t, int64(1), tx.Calls.Load())
	})

	t.Run("second registration of same login conflicts", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		svc, _ := newAuthService(users)

		_, err := svc.Register(ctx, aliceInput())
		require.NoError(t, err)

		again := aliceInput()
		again.Password = "another1"
		again.APIKey = "K2"
		_, err = svc.Register(ctx, again)
		assert.ErrorIs(t, err, service.ErrLoginTaken)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, 1, users.Count())
		assert.Equal(t, 1, users.CreateCalls(), "conflict detected before insert")

		stored, err := users.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "secret1", stored.Password, "original row untouched")
	})

	t.Run("logins are case sensitive", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		svc, _ := newAuthService(users)

		_, err := svc.Register(ctx, aliceInput())
		require.NoError(t, err)
		upper := aliceInput()
		upper.Login = "Alice"
		_, err = svc.Register(ctx, upper)
		assert.NoError(t, err)
		assert.Equal(t, 2, users.Count())
	})
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *service.RegisterInput)
		field   string
		wantErr error
	}{
		{"login too short", func(in *service.RegisterInput) { in.Login = "ab" }, "login", domain.ErrLoginTooShort},
		{"login too long", func(in *service.RegisterInput) { in.Login = strings.Repeat("x", 51) }, "login", domain.ErrLoginTooLong},
		{"empty login", func(in *service.RegisterInput) { in.Login = "" }, "login", domain.ErrEmptyLogin},
		{"password too short", func(in *service.RegisterInput) { in.Password = "12345" }, "password", domain.ErrPasswordTooShort},
		{"missing api key", func(in *service.RegisterInput) { in.APIKey = "" }, "mexc_api_key", domain.ErrEmptyAPIKey},
		{"missing api secret", func(in *service.RegisterInput) { in.APISecret = "" }, "mexc_api_secret", domain.ErrEmptyAPISecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mocks.NewMockUserStore()
			svc, tx := newAuthService(users)
			in := aliceInput()
			tt.mutate(&in)

			user, err := svc.Register(context.Background(), in)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, service.ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)

			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			assert.Zero(t, users.GetByLoginCalls(), "no store access on invalid input")
			assert.Zero(t, users.CreateCalls())
			assert.Zero(t, tx.Calls.Load())
		})
	}

	t.Run("limits are inclusive", func(t *testing.T) {
		svc, _ := newAuthService(mocks.NewMockUserStore())
		for _, login := range []string{"abc", strings.Repeat("y", 50)} {
			in := aliceInput()
			in.Login = login
			in.Password = "123456"
			_, err := svc.Register(context.Background(), in)
			assert.NoError(t, err, login)
		}
	})
}

func TestAuthService_RegisterLostRace(t *testing.T) {
	ctx := context.Background()

	t.Run("concurrent winner with same login", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		users.CreateFn = func(ctx context.Context, u *domain.User) error {
			users.Seed(domain.User{Login: u.Login, Password: "winner1",
				Credentials: domain.ExchangeCredentials{APIKey: "W", APISecret: "W"}})
			return fmt.Errorf("insert: %w", store.ErrLoginExists)
		}
		svc, _ := newAuthService(users)

		_, err := svc.Register(ctx, aliceInput())
		assert.ErrorIs(t, err, service.ErrLoginTaken)
	})

	t.Run("constraint violation without matching login", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByLogin", mock.Anything, "alice").Return(nil, store.ErrUserNotFound).Twice()
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(store.ErrDuplicate).Once()
		svc, _ := newAuthService(users)

		_, err := svc.Register(ctx, aliceInput())
		assert.ErrorIs(t, err, service.ErrConstraintConflict)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.NotErrorIs(t, err, service.ErrLoginTaken)
		users.AssertExpectations(t)
	})

	t.Run("re-check failure is not a conflict", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByLogin", mock.Anything, "alice").Return(nil, store.ErrUserNotFound).Once()
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrLoginExists).Once()
		users.On("GetByLogin", mock.Anything, "alice").Return(nil, errors.New("connection lost")).Once()
		svc, _ := newAuthService(users)

		_, err := svc.Register(ctx, aliceInput())
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrConflict)
		users.AssertExpectations(t)
	})
}

func TestAuthService_RegisterStoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("availability check fails", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		users.GetByLoginFn = func(ctx context.Context, login string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		}
		svc, _ := newAuthService(users)

		_, err := svc.Register(ctx, aliceInput())
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrConflict)
		assert.Contains(t, err.Error(), "failed to check login availability")
		assert.Zero(t, users.CreateCalls())
	})

	t.Run("transaction cannot start", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		tx := &mocks.MockTransactor{WithinTxFn: func(ctx context.Context, fn store.TxFn) error {
			return store.ErrTransactionFailed
		}}
		svc := service.NewAuthService(users, tx, discardLogger())

		_, err := svc.Register(ctx, aliceInput())
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
		assert.Zero(t, users.Count())
	})
}

func TestAuthService_RegisterConcurrentSameLogin(t *testing.T) {
	users := mocks.NewMockUserStore()
	svc, _ := newAuthService(users)

	const workers = 16
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), aliceInput())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, service.ErrLoginTaken)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, users.Count())
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	users.Seed(domain.User{Login: "alice", Password: "secret1",
		Credentials: domain.ExchangeCredentials{APIKey: "K", APISecret: "S"}})
	users.Seed(domain.User{Login: "nokeys", Password: "secret1",
		Credentials: domain.ExchangeCredentials{APIKey: "K"}})
	svc, _ := newAuthService(users)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, domain.ExchangeCredentials{APIKey: "K", APISecret: "S"}, user.Credentials)
	})

	t.Run("wrong password and unknown login are indistinguishable", func(t *testing.T) {
		_, wrongPw := svc.Login(ctx, "alice", "wrongpw")
		_, unknown := svc.Login(ctx, "bob", "secret1")
		assert.ErrorIs(t, wrongPw, service.ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, service.ErrInvalidCredentials)
		assert.Equal(t, wrongPw.Error(), unknown.Error())
	})

	t.Run("password comparison is exact", func(t *testing.T) {
		for _, pw := range []string{"Secret1", "secret1 ", " secret1", "secret"} {
			_, err := svc.Login(ctx, "alice", pw)
			assert.ErrorIs(t, err, service.ErrInvalidCredentials, pw)
		}
	})

	t.Run("login lookup is exact", func(t *testing.T) {
		_, err := svc.Login(ctx, "Alice", "secret1")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("incomplete credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "nokeys", "secret1")
		assert.ErrorIs(t, err, service.ErrCredentialsNotFound)
	})

	t.Run("wrong password wins over missing credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "nokeys", "wrongpw")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := mocks.NewMockUserStore()
		failing.GetByLoginFn = func(ctx context.Context, login string) (*domain.User, error) {
			return nil, errors.New("bad connection")
		}
		svc, _ := newAuthService(failing)

		_, err := svc.Login(ctx, "alice", "secret1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_RegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(mocks.NewMockUserStore())

	inputs := []service.RegisterInput{
		{Login: "trader01", Password: "pa55word", APIKey: "mx0vgl-key", APISecret: "a1b2c3d4e5"},
		{Login: "трейдер", Password: "пароль12", APIKey: "ключ", APISecret: "секрет"},
		{Login: "with space", Password: "  spaced  ", APIKey: " k ", APISecret: "s\ttab"},
	}

	for _, in := range inputs {
		_, err := svc.Register(ctx, in)
		require.NoError(t, err, in.Login)

		user, err := svc.Login(ctx, in.Login, in.Password)
		require.NoError(t, err, in.Login)
		assert.Equal(t, in.APIKey, user.Credentials.APIKey)
		assert.Equal(t, in.APISecret, user.Credentials.APISecret)
	}
}
