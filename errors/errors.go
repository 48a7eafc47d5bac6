// Package errors provides error handling for stoich.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and user-facing hints from one import.
//
// Usage:
//
//	if err := loadSheet(); err != nil {
//	    return errors.Wrap(err, "failed to load element table")
//	}
//
//	return errors.WithHint(err, "set elements.sheet in am.toml")
//
// Structural problems in input tables (missing sheet, missing column) are
// reported with the sentinels below so callers can tell them apart from I/O
// failures. Per-row problems are never errors.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// GetStack returns the reportable stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors. Wrap these with errors.Wrap() to add context while
// keeping them matchable with errors.Is().
var (
	// ErrNotFound indicates a file, run or key does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates invalid flags or configuration values
	ErrInvalidRequest = New("invalid request")

	// ErrMissingColumn indicates a required table column is absent
	ErrMissingColumn = New("missing column")

	// ErrMissingSheet indicates a workbook sheet could not be selected
	ErrMissingSheet = New("missing sheet")

	// ErrUnsupportedFormat indicates a file extension no reader handles
	ErrUnsupportedFormat = New("unsupported format")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsMissingColumn checks if an error is or wraps ErrMissingColumn
func IsMissingColumn(err error) bool {
	return err != nil && Is(err, ErrMissingColumn)
}

// IsMissingSheet checks if an error is or wraps ErrMissingSheet
func IsMissingSheet(err error) bool {
	return err != nil && Is(err, ErrMissingSheet)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewMissingColumnError reports that table lacks column
func NewMissingColumnError(table, column string) error {
	return Wrapf(ErrMissingColumn, "table %q has no %q column", table, column)
}
