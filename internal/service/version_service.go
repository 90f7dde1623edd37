package service

import (
	"log/slog"

	"github.com/phrazzld/terminal-auth/internal/config"
)

// ServiceName is reported by the service info endpoint.
const ServiceName = "Crypto Terminal Auth Service"

// VersionAck is returned when a client's version is accepted.
type VersionAck struct {
	Status           string
	Message          string
	ServerAPIVersion string
}

// ServiceInfo describes this service and the client version it expects.
type ServiceInfo struct {
	ServiceName           string
	APIVersion            string
	ExpectedClientVersion string
}

// VersionService compares client versions against the configured one.
type VersionService struct {
	expectedClient string
	apiVersion     string
	logger         *slog.Logger
}

// NewVersionService creates a VersionService from cfg.
func NewVersionService(cfg config.VersionConfig, logger *slog.Logger) *VersionService {
	return &VersionService{
		expectedClient: cfg.ExpectedClient,
		apiVersion:     cfg.API,
		logger:         logger.With("component", "version_service"),
	}
}

// Check accepts clientVersion only when it equals the expected version
// exactly; otherwise it returns an *UpgradeRequiredError.
func (s *VersionService) Check(clientVersion string) (*VersionAck, error) {
	if clientVersion != s.expectedClient {
		s.logger.Info("outdated client version",
			slog.String("client_version", clientVersion),
			slog.String("expected_version", s.expectedClient))
		return nil, &UpgradeRequiredError{
			ClientVersion:   clientVersion,
			ExpectedVersion: s.expectedClient,
		}
	}

	return &VersionAck{
		Status:           "ok",
		Message:          "Client version is up to date.",
		ServerAPIVersion: s.apiVersion,
	}, nil
}

// Info returns the service name and configured versions.
func (s *VersionService) Info() ServiceInfo {
	return ServiceInfo{
		ServiceName:           ServiceName,
		APIVersion:            s.apiVersion,
		ExpectedClientVersion: s.expectedClient,
	}
}
