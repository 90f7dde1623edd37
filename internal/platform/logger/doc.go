// Package logger sets up the service's JSON slog logger and carries
// request-scoped loggers (annotated with trace ids) through context.
package logger
