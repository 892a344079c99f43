package logs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRunID is the key for storing the command run ID in context.
	KeyRunID ContextKey = "run_id"

	// KeyLogger is the key for storing a run-scoped logger in context.
	KeyLogger ContextKey = "logger"
)

// NewRunContext tags ctx with a fresh run ID and a logger carrying it.
func NewRunContext(ctx context.Context, logger *slog.Logger) context.Context {
	runID := uuid.New().String()
	ctx = WithRunID(ctx, runID)

	return WithLogger(ctx, logger.With(slog.String(string(KeyRunID), runID)))
}

// RunIDFromContext extracts the run ID from ctx.
// If not found, returns empty string.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRunID).(string); ok {
		return id
	}

	return ""
}

// WithRunID returns a new context with the run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, KeyRunID, runID)
}

// LoggerOrDefault extracts the run-scoped logger from ctx.
// If not found, returns the provided fallback logger.
func LoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
