package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithResource creates a child logger with a resource field
func WithResource(ctx context.Context, resource string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("resource", resource).Logger()
	return WithContext(ctx, childLogger)
}

// WithRecordID creates a child logger with a record_id field
func WithRecordID(ctx context.Context, recordID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("record_id", recordID).Logger()
	return WithContext(ctx, childLogger)
}
