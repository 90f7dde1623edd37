package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Callers check them with errors.Is.
var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates the request collides with existing state.
	ErrConflict = errors.New("conflict")

	// ErrLoginTaken is returned when the requested login already belongs to a user.
	ErrLoginTaken = fmt.Errorf("%w: login already taken", ErrConflict)

	// ErrConstraintConflict is returned when the insert hit a uniqueness
	// constraint but no existing user with the login could be found afterwards.
	ErrConstraintConflict = fmt.Errorf("%w: uniqueness constraint violated", ErrConflict)

	// ErrInvalidCredentials is returned for an unknown login or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrCredentialsNotFound is returned when the user authenticated but has
	// no complete exchange key pair on record.
	ErrCredentialsNotFound = errors.New("exchange credentials not found")

	// ErrUpgradeRequired is wrapped by every *UpgradeRequiredError.
	ErrUpgradeRequired = errors.New("client upgrade required")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// NewValidationError creates a ValidationError for field caused by err.
// The reason is taken from err's message.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: err.Error(), Err: err}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Unwrap exposes both ErrValidation and the underlying cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// UpgradeRequiredError carries the rejected and the expected client versions.
type UpgradeRequiredError struct {
	ClientVersion   string
	ExpectedVersion string
}

func (e *UpgradeRequiredError) Error() string {
	return fmt.Sprintf(
		"Client version '%s' is outdated. Expected version: '%s'. Please update the application.",
		e.ClientVersion, e.ExpectedVersion)
}

// Unwrap returns ErrUpgradeRequired.
func (e *UpgradeRequiredError) Unwrap() error {
	return ErrUpgradeRequired
}
