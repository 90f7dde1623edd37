package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/terminal-auth/internal/api/shared"
	"github.com/phrazzld/terminal-auth/internal/service"
)

// User-facing messages. The terminal client matches on some of these.
const (
	MsgInvalidRequest      = "Invalid request format"
	MsgLoginTaken          = "This login is already taken for the terminal."
	MsgConstraintConflict  = "Login for the service already registered."
	MsgInvalidCredentials  = "Incorrect terminal login or password"
	MsgCredentialsNotFound = "MEXC API keys not found for this user. Please register them or contact support."
	MsgUnexpectedError     = "An unexpected error occurred"
	msgValidationFallback  = "Invalid request data"
)

// MapErrorToStatusCode maps service errors to HTTP status codes.
// Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrMalformedBody):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrCredentialsNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpgradeRequired):
		return http.StatusUpgradeRequired
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message shown to clients for err.
// It never includes driver or infrastructure detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	var ve *service.ValidationError
	var upgrade *service.UpgradeRequiredError

	switch {
	case errors.Is(err, shared.ErrMalformedBody):
		return MsgInvalidRequest
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, service.ErrValidation):
		return msgValidationFallback
	case errors.Is(err, service.ErrLoginTaken):
		return MsgLoginTaken
	case errors.Is(err, service.ErrConstraintConflict):
		return MsgConstraintConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, service.ErrCredentialsNotFound):
		return MsgCredentialsNotFound
	case errors.As(err, &upgrade):
		return upgrade.Error()
	default:
		return MsgUnexpectedError
	}
}

// HandleAPIError writes the error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
}

// requestValidationError converts the first struct validation failure into a
// *service.ValidationError so request and service validation share one shape.
func requestValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", service.ErrValidation, err)
	}

	fe := verrs[0]
	return &service.ValidationError{
		Field:  fe.Field(),
		Reason: fmt.Sprintf("%s %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param())),
		Err:    fe,
	}
}

func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters long", param)
	default:
		return "is invalid"
	}
}
