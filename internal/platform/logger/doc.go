// Package logger configures the application's structured logging (log/slog
// with a JSON handler) and carries request-scoped loggers through contexts.
package logger
