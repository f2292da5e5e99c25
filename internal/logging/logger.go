// Package logging provides structured logging configuration using log/slog.
//
// Logs go to stderr so that stdout carries only table output and can be
// piped. Every command runs inside one editing session; its id is carried
// in the context and attached to log entries by FromContext.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

const ctxKeySessionID contextKey = "session_id"

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	SetupWithWriter(os.Stderr, level, format)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// VerbosityLevel raises a configured level by the number of -d flags:
// one flag lowers the threshold to info, two or more to debug.
func VerbosityLevel(configured string, count int) string {
	switch {
	case count >= 2:
		return "debug"
	case count == 1 && ParseLevel(configured) > slog.LevelInfo:
		return "info"
	default:
		return configured
	}
}

// ContextWithSessionID stores the editing session id in ctx.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, id)
}

// SessionIDFromContext returns the session id stored in ctx, if any.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok {
		return v
	}
	return ""
}

// FromContext returns the default logger enriched with the session id
// carried by ctx, so all entries of one session can be correlated.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if id := SessionIDFromContext(ctx); id != "" {
		logger = logger.With("session_id", id)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	log := logging.WithFields(ctx, "file", path)
//	log.Info("table loaded", "rows", t.Len())
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
