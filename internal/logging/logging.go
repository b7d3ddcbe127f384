// Package logging carries the slog helpers shared by the HTTP middleware
// and the background workers.
package logging

import (
	"context"
	"log/slog"
	"os"
)

type contextKey struct{}

var loggerKey contextKey

// NewLogger builds the application logger. JSON output everywhere except
// development, where text is easier to read.
func NewLogger(env string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// WithLogger stores the logger in the context for downstream handlers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the request logger, falling back to slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// LogHTTPRequest emits one access-log line per served request.
func LogHTTPRequest(logger *slog.Logger, method, path string, status int, durationMs float64, attrs ...slog.Attr) {
	args := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs),
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.Info("http request", args...)
}

// LogError logs an error with a stable message and the error as an attribute.
func LogError(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	args := []any{slog.Any("error", err)}
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.Error(msg, args...)
}
