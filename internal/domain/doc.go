// Package domain contains the core entities of the terminal auth service:
// registered users and the exchange credentials they hand to the terminal.
// It is independent of any storage or delivery mechanism.
package domain
