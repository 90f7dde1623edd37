package api

import (
	"github.com/phrazzld/terminal-auth/internal/domain"
	"github.com/phrazzld/terminal-auth/internal/service"
)

// RegisterRequest is the JSON body of POST /auth/register.
// Length limits are enforced by the auth service.
type RegisterRequest struct {
	Login         string `json:"login" validate:"required"`
	Password      string `json:"password" validate:"required"`
	MexcAPIKey    string `json:"mexc_api_key" validate:"required"`
	MexcAPISecret string `json:"mexc_api_secret" validate:"required"`
}

// LoginRequest holds the form fields of POST /auth/login.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// APIKeysResponse is the exchange key pair returned to the terminal.
type APIKeysResponse struct {
	MexcAPIKey    string `json:"mexc_api_key"`
	MexcAPISecret string `json:"mexc_api_secret"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Login   string          `json:"login"`
	APIKeys APIKeysResponse `json:"api_keys"`
}

func newAuthResponse(user *domain.User) AuthResponse {
	return AuthResponse{
		Login: user.Login,
		APIKeys: APIKeysResponse{
			MexcAPIKey:    user.Credentials.APIKey,
			MexcAPISecret: user.Credentials.APISecret,
		},
	}
}

// CheckVersionRequest is the JSON body of POST /sec/check_version.
// ClientVersion must be present but may be empty.
type CheckVersionRequest struct {
	ClientVersion *string `json:"client_version" validate:"required"`
}

// CheckVersionResponse acknowledges an up-to-date client.
type CheckVersionResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	ServerAPIVersion string `json:"server_api_version"`
}

func newCheckVersionResponse(ack *service.VersionAck) CheckVersionResponse {
	return CheckVersionResponse{
		Status:           ack.Status,
		Message:          ack.Message,
		ServerAPIVersion: ack.ServerAPIVersion,
	}
}

// ServiceInfoResponse is returned by GET /sec and GET /sec/info.
type ServiceInfoResponse struct {
	ServiceName           string `json:"service_name"`
	APIVersion            string `json:"api_version"`
	ExpectedClientVersion string `json:"expected_client_version"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
