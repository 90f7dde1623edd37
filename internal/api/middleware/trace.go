// Package middleware contains HTTP middleware specific to this service.
// Generic middleware (request ids, panic recovery, access logs) comes from chi.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/terminal-auth/internal/api/shared"
	"github.com/phrazzld/terminal-auth/internal/platform/logger"
)

// TraceIDHeader is the response header carrying the request's trace id.
const TraceIDHeader = "X-Trace-ID"

// NewTraceMiddleware returns middleware that assigns each request a trace id,
// echoes it in the X-Trace-ID header and stores a logger annotated with it
// in the request context. base is used when the context carries no logger.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := logger.FromContextOrDefault(ctx, base).With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
