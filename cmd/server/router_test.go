package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/terminal-auth/internal/api"
	"github.com/phrazzld/terminal-auth/internal/api/middleware"
	"github.com/phrazzld/terminal-auth/internal/api/shared"
	"github.com/phrazzld/terminal-auth/internal/config"
	"github.com/phrazzld/terminal-auth/internal/domain"
	"github.com/phrazzld/terminal-auth/internal/mocks"
	"github.com/phrazzld/terminal-auth/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) PingContext(context.Context) error { return p.err }

func newTestApplication(t *testing.T, users *mocks.MockUserStore, pinger api.Pinger) *application {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            8000,
			LogLevel:        "info",
			ShutdownTimeout: time.Second,
			RequestTimeout:  5 * time.Second,
		},
		Version: config.VersionConfig{ExpectedClient: "1.0.3", API: "1.2.5"},
	}
	return &application{
		config:         cfg,
		logger:         log,
		authService:    service.NewAuthService(users, &mocks.MockTransactor{}, log),
		versionService: service.NewVersionService(cfg.Version, log),
		healthPinger:   pinger,
	}
}

func doJSON(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func doForm(t *testing.T, srv *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.PostForm(srv.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRouter_RegisterLoginScenario(t *testing.T) {
	users := mocks.NewMockUserStore()
	srv := httptest.NewServer(newTestApplication(t, users, &stubPinger{}).setupRouter())
	defer srv.Close()

	alice := `{"login":"alice","password":"secret1","mexc_api_key":"K","mexc_api_secret":"S"}`

	resp := doJSON(t, srv, "/auth/register", alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created api.AuthResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, api.AuthResponse{
		Login:   "alice",
		APIKeys: api.APIKeysResponse{MexcAPIKey: "K", MexcAPISecret: "S"},
	}, created)

	resp = doJSON(t, srv, "/auth/register", alice)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict shared.ErrorResponse
	decodeBody(t, resp, &conflict)
	assert.Equal(t, api.MsgLoginTaken, conflict.Error)
	assert.NotEmpty(t, conflict.TraceID)
	assert.Equal(t, conflict.TraceID, resp.Header.Get(middleware.TraceIDHeader))
	assert.Equal(t, 1, users.Count())

	resp = doForm(t, srv, "/auth/login", url.Values{"login": {"alice"}, "password": {"secret1"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loggedIn api.AuthResponse
	decodeBody(t, resp, &loggedIn)
	assert.Equal(t, created, loggedIn)

	resp = doForm(t, srv, "/auth/login", url.Values{"login": {"alice"}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var wrongPassword shared.ErrorResponse
	decodeBody(t, resp, &wrongPassword)

	resp = doForm(t, srv, "/auth/login", url.Values{"login": {"bob"}, "password": {"secret1"}})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var unknownLogin shared.ErrorResponse
	decodeBody(t, resp, &unknownLogin)
	assert.Equal(t, wrongPassword.Error, unknownLogin.Error)
	assert.Equal(t, api.MsgInvalidCredentials, unknownLogin.Error)
}

func TestRouter_LoginWithoutStoredKeys(t *testing.T) {
	users := mocks.NewMockUserStore()
	users.Seed(domain.User{Login: "legacy", Password: "secret1"})
	srv := httptest.NewServer(newTestApplication(t, users, &stubPinger{}).setupRouter())
	defer srv.Close()

	resp := doForm(t, srv, "/auth/login", url.Values{"login": {"legacy"}, "password": {"secret1"}})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body shared.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, api.MsgCredentialsNotFound, body.Error)
}

func TestRouter_RegisterRejectsShortInputWithoutWriting(t *testing.T) {
	users := mocks.NewMockUserStore()
	srv := httptest.NewServer(newTestApplication(t, users, &stubPinger{}).setupRouter())
	defer srv.Close()

	for _, body := range []string{
		`{"login":"ab","password":"secret1","mexc_api_key":"K","mexc_api_secret":"S"}`,
		`{"login":"alice","password":"12345","mexc_api_key":"K","mexc_api_secret":"S"}`,
	} {
		resp := doJSON(t, srv, "/auth/register", body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	}
	assert.Zero(t, users.CreateCalls())
	assert.Zero(t, users.Count())
}

func TestRouter_VersionEndpoints(t *testing.T) {
	srv := httptest.NewServer(newTestApplication(t, mocks.NewMockUserStore(), &stubPinger{}).setupRouter())
	defer srv.Close()

	t.Run("matching version", func(t *testing.T) {
		resp := doJSON(t, srv, "/sec/check_version", `{"client_version":"1.0.3"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var ack api.CheckVersionResponse
		decodeBody(t, resp, &ack)
		assert.Equal(t, "ok", ack.Status)
		assert.Equal(t, "1.2.5", ack.ServerAPIVersion)
	})

	t.Run("outdated version", func(t *testing.T) {
		resp := doJSON(t, srv, "/sec/check_version", `{"client_version":"0.9.0"}`)
		require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
		var body shared.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Contains(t, body.Error, "'0.9.0'")
		assert.Contains(t, body.Error, "'1.0.3'")
	})

	t.Run("missing field", func(t *testing.T) {
		resp := doJSON(t, srv, "/sec/check_version", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	for _, path := range []string{"/sec", "/sec/info"} {
		t.Run("info "+path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var info api.ServiceInfoResponse
			decodeBody(t, resp, &info)
			assert.Equal(t, api.ServiceInfoResponse{
				ServiceName:           service.ServiceName,
				APIVersion:            "1.2.5",
				ExpectedClientVersion: "1.0.3",
			}, info)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   api.HealthResponse
	}{
		{"database reachable", nil, http.StatusOK, api.HealthResponse{Status: "ok", Database: "ok"}},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable,
			api.HealthResponse{Status: "unavailable", Database: "unreachable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(newTestApplication(t, mocks.NewMockUserStore(), &stubPinger{err: tt.pingErr}).setupRouter())
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/health")
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body api.HealthResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	srv := httptest.NewServer(newTestApplication(t, mocks.NewMockUserStore(), &stubPinger{}).setupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/auth/register")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
