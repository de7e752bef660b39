// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	// runIDKey identifies one invocation of the seed generator.
	runIDKey contextKey = "run_id"

	loggerKey contextKey = "logger"
)

// GenerateRunID creates a short run identifier (first 8 characters of a UUID).
func GenerateRunID() string {
	return uuid.New().String()[:8]
}

// ContextWithRunID returns a new context carrying the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// ContextWithNewRunID returns a context with a freshly generated run ID.
//
//	ctx = logging.ContextWithNewRunID(ctx)
func ContextWithNewRunID(ctx context.Context) context.Context {
	return ContextWithRunID(ctx, GenerateRunID())
}

// RunIDFromContext returns the run ID stored in ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored in ctx, or the global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with the run ID from ctx attached.
//
//	logging.Ctx(ctx).Info().Msg("Movies converted")
//	// {"level":"info","run_id":"abc12345","message":"Movies converted"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := LoggerFromContext(ctx)
	if runID := RunIDFromContext(ctx); runID != "" {
		logger = logger.With().Str("run_id", runID).Logger()
	}
	return &logger
}

// ContextWithComponent returns a context whose logger carries component.
// It builds on the logger already stored in ctx, if any.
//
//	ctx = logging.ContextWithComponent(ctx, "aggregation")
//	logging.Ctx(ctx).Debug().Msg("Ratings aggregated")
func ContextWithComponent(ctx context.Context, component string) context.Context {
	logger := LoggerFromContext(ctx).With().Str("component", component).Logger()
	return ContextWithLogger(ctx, logger)
}
