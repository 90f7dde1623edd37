package api

import (
	"net/http"

	"github.com/phrazzld/terminal-auth/internal/api/shared"
	"github.com/phrazzld/terminal-auth/internal/service"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, requestValidationError(err))
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Login:     req.Login,
		Password:  req.Password,
		APIKey:    req.MexcAPIKey,
		APISecret: req.MexcAPISecret,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newAuthResponse(user))
}

// Login handles POST /auth/login. Credentials arrive as form fields.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := shared.DecodeForm(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	req := LoginRequest{
		Login:    form.Get("login"),
		Password: form.Get("password"),
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, requestValidationError(err))
		return
	}

	user, err := h.authService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, shared.WithElevatedLogLevel())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newAuthResponse(user))
}
