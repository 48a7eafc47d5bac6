package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across stoich.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldCommand   = "command"

	// Tables
	FieldFile   = "file"
	FieldSheet  = "sheet"
	FieldRow    = "row"
	FieldColumn = "column"
	FieldGroup  = "group"

	// Formulas
	FieldFormula   = "formula"
	FieldReason    = "reason"
	FieldCanonical = "canonical"

	// Counts and timing
	FieldCount      = "count"
	FieldAccepted   = "accepted"
	FieldRejected   = "rejected"
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger carrying the run ID and component
// stored in ctx.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	c := &Cleaner{logger: logger.ComponentLogger("clean")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
