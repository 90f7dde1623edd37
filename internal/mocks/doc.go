// Package mocks provides shared test doubles for the store interfaces.
//
// MockUserStore is an in-memory store with optional function-field
// overrides; TestifyMockUserStore is the testify/mock equivalent for tests
// that assert on exact calls. MockTransactor runs transaction bodies
// directly with a nil *sql.Tx.
//
//	users := mocks.NewMockUserStore()
//	users.CreateFn = func(ctx context.Context, u *domain.User) error {
//	    return store.ErrLoginExists
//	}
package mocks
