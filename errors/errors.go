// Package errors provides error handling for isx.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details attached to generator diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Classify a generation failure and tell the user how to fix it
//	err := errors.WithHint(
//	    errors.Wrapf(errors.ErrUnsupportedShape, "type %s", name),
//	    "only structs, arrays, basic newtypes and sealed interfaces are supported")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnsupportedShape) {
//	    // report diagnostic
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
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
	Mark         = crdb.Mark
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

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Generation failures. Every diagnostic produced by the generator wraps or
// marks exactly one of these, so callers can classify with errors.Is().
var (
	// ErrUnsupportedShape indicates the type definition is not one of the
	// recognized shapes (record, positional record, unit record, union)
	ErrUnsupportedShape = New("unsupported shape")

	// ErrMultipleDefaultMarkers indicates more than one union variant is
	// marked as the default
	ErrMultipleDefaultMarkers = New("multiple default markers")

	// ErrMissingCapability indicates a member type provides no predicate for
	// the requested family
	ErrMissingCapability = New("missing capability")

	// ErrStale indicates generated output on disk differs from a fresh run
	ErrStale = New("generated output is stale")
)

// IsUnsupportedShapeError checks if an error is or wraps ErrUnsupportedShape
func IsUnsupportedShapeError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedShape)
}

// IsMultipleDefaultMarkersError checks if an error is or wraps ErrMultipleDefaultMarkers
func IsMultipleDefaultMarkersError(err error) bool {
	return err != nil && Is(err, ErrMultipleDefaultMarkers)
}

// IsMissingCapabilityError checks if an error is or wraps ErrMissingCapability
func IsMissingCapabilityError(err error) bool {
	return err != nil && Is(err, ErrMissingCapability)
}

// NewUnsupportedShapef creates an unsupported-shape error with a formatted message
func NewUnsupportedShapef(format string, args ...interface{}) error {
	return Wrap(ErrUnsupportedShape, Newf(format, args...).Error())
}

// NewMissingCapabilityf creates a missing-capability error with a formatted message
func NewMissingCapabilityf(format string, args ...interface{}) error {
	return Wrap(ErrMissingCapability, Newf(format, args...).Error())
}
