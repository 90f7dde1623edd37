// Package store defines the persistence contracts used by the services:
// the UserStore interface, the store error taxonomy and transaction helpers.
// Implementations live under internal/platform.
package store
