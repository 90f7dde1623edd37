package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/terminal-auth/internal/domain"
	"github.com/phrazzld/terminal-auth/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// It is safe for concurrent use.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByLoginFn func(ctx context.Context, login string) (*domain.User, error)

	mu         sync.Mutex
	users      map[string]*domain.User
	lastID     int64
	createCall int
	getCall    int
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// Seed stores a copy of user as if it had been created earlier and returns the stored copy.
func (m *MockUserStore) Seed(user domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	user.ID = m.lastID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.users[user.Login] = &user
	return &user
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.createCall++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Login]; exists {
		return store.ErrLoginExists
	}
	m.lastID++
	user.ID = m.lastID
	user.CreatedAt = time.Now().UTC()
	stored := *user
	m.users[user.Login] = &stored
	return nil
}

// GetByLogin implements the UserStore interface
func (m *MockUserStore) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	m.mu.Lock()
	m.getCall++
	m.mu.Unlock()

	if m.GetByLoginFn != nil {
		return m.GetByLoginFn(ctx, login)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.users[login]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// WithTx returns the same mock; transactions are not simulated.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// CreateCalls returns how many times Create was called.
func (m *MockUserStore) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCall
}

// GetByLoginCalls returns how many times GetByLogin was called.
func (m *MockUserStore) GetByLoginCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCall
}
