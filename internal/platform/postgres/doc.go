// Package postgres provides the PostgreSQL implementation of store.UserStore,
// the mapping from PostgreSQL error codes to store errors, and the embedded
// goose migrations that create the schema.
package postgres
