package api

import (
	"net/http"

	"github.com/phrazzld/terminal-auth/internal/api/shared"
	"github.com/phrazzld/terminal-auth/internal/service"
)

// VersionChecker is the subset of service.VersionService used by the handler.
type VersionChecker interface {
	Check(clientVersion string) (*service.VersionAck, error)
	Info() service.ServiceInfo
}

// VersionHandler serves the /sec endpoints.
type VersionHandler struct {
	versions VersionChecker
}

// NewVersionHandler creates a VersionHandler.
func NewVersionHandler(versions VersionChecker) *VersionHandler {
	return &VersionHandler{versions: versions}
}

// CheckVersion handles POST /sec/check_version.
func (h *VersionHandler) CheckVersion(w http.ResponseWriter, r *http.Request) {
	var req CheckVersionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, requestValidationError(err))
		return
	}

	ack, err := h.versions.Check(*req.ClientVersion)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCheckVersionResponse(ack))
}

// Info handles GET /sec and GET /sec/info.
func (h *VersionHandler) Info(w http.ResponseWriter, r *http.Request) {
	info := h.versions.Info()
	shared.RespondWithJSON(w, r, http.StatusOK, ServiceInfoResponse{
		ServiceName:           info.ServiceName,
		APIVersion:            info.APIVersion,
		ExpectedClientVersion: info.ExpectedClientVersion,
	})
}
