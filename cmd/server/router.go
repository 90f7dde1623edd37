package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/terminal-auth/internal/api"
	apiMiddleware "github.com/phrazzld/terminal-auth/internal/api/middleware"
)

// setupRouter creates the chi router with middleware and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if app.config.Server.RequestTimeout > 0 {
		r.Use(middleware.Timeout(app.config.Server.RequestTimeout))
	}
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.authService)
	versionHandler := api.NewVersionHandler(app.versionService)
	healthHandler := api.NewHealthHandler(app.healthPinger, api.DefaultHealthTimeout)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/sec", func(r chi.Router) {
		r.Get("/", versionHandler.Info)
		r.Get("/info", versionHandler.Info)
		r.Post("/check_version", versionHandler.CheckVersion)
	})

	r.Get("/health", healthHandler.Check)

	return r
}
