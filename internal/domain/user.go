package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Field limits for user registration. Lengths are counted in characters.
const (
	MinLoginLength    = 3
	MaxLoginLength    = 50
	MinPasswordLength = 6
)

// Common validation errors
var (
	ErrEmptyLogin       = errors.New("login cannot be empty")
	ErrLoginTooShort    = fmt.Errorf("login must be at least %d characters long", MinLoginLength)
	ErrLoginTooLong     = fmt.Errorf("login must be at most %d characters long", MaxLoginLength)
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	ErrEmptyAPIKey      = errors.New("mexc_api_key cannot be empty")
	ErrEmptyAPISecret   = errors.New("mexc_api_secret cannot be empty")
)

// ExchangeCredentials is the MEXC API key pair a user registers with the
// terminal. Both values are opaque and returned exactly as stored.
type ExchangeCredentials struct {
	APIKey    string `json:"mexc_api_key"`
	APISecret string `json:"mexc_api_secret"`
}

// IsComplete reports whether both halves of the key pair are present.
func (c ExchangeCredentials) IsComplete() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// Validate returns the first missing half of the key pair.
func (c ExchangeCredentials) Validate() error {
	if c.APIKey == "" {
		return ErrEmptyAPIKey
	}
	if c.APISecret == "" {
		return ErrEmptyAPISecret
	}
	return nil
}

// User represents a registered terminal user.
//
// Password is kept verbatim; the service performs no hashing.
type User struct {
	ID          int64               `json:"id"`
	Login       string              `json:"login"`
	Password    string              `json:"-"`
	Credentials ExchangeCredentials `json:"-"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewUser builds a User from registration input.
// Returns an error if validation fails. ID and CreatedAt are assigned by the store.
func NewUser(login, password string, creds ExchangeCredentials) (*User, error) {
	user := &User{
		Login:       login,
		Password:    password,
		Credentials: creds,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks login, password and credentials in that order and
// returns the first violation.
func (u *User) Validate() error {
	if err := ValidateLogin(u.Login); err != nil {
		return err
	}
	if err := ValidatePassword(u.Password); err != nil {
		return err
	}
	return u.Credentials.Validate()
}

// ValidateLogin enforces the login length bounds.
func ValidateLogin(login string) error {
	n := utf8.RuneCountInString(login)
	switch {
	case n == 0:
		return ErrEmptyLogin
	case n < MinLoginLength:
		return ErrLoginTooShort
	case n > MaxLoginLength:
		return ErrLoginTooLong
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n == 0 {
		return ErrEmptyPassword
	}
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
