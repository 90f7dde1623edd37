package mocks

import (
	"context"
	"sync/atomic"

	"github.com/phrazzld/terminal-auth/internal/store"
)

// MockTransactor implements store.Transactor without a database.
// By default the body runs with a nil *sql.Tx and its error is returned.
type MockTransactor struct {
	WithinTxFn func(ctx context.Context, fn store.TxFn) error
	Calls      atomic.Int64
}

// Ensure MockTransactor implements store.Transactor interface
var _ store.Transactor = (*MockTransactor)(nil)

// WithinTx implements store.Transactor
func (m *MockTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	m.Calls.Add(1)
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}
