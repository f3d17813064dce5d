// Package errors provides error handling for ontovault.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
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
//	// Check errors
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
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
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors forming the ontovault error taxonomy.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the kind.
var (
	// ErrStorage indicates a backend I/O or transaction failure.
	// Storage errors are propagated verbatim and never retried by the core.
	ErrStorage = New("storage failure")

	// ErrValidation indicates missing or invalid input, or a disallowed
	// state transition. Validation failures are side-effect-free: they are
	// raised before any mutation.
	ErrValidation = New("validation failure")

	// ErrNotFound indicates an unknown ontology, concept, or version.
	// Distinct from an empty result set, which is not an error.
	ErrNotFound = New("not found")

	// ErrDataIntegrity indicates persisted state that violates a structural
	// invariant, such as a cycle in the ontology parent chain.
	ErrDataIntegrity = New("data integrity violation")
)

// IsStorageError checks if an error is or wraps ErrStorage.
func IsStorageError(err error) bool {
	return err != nil && Is(err, ErrStorage)
}

// IsValidationError checks if an error is or wraps ErrValidation.
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsDataIntegrityError checks if an error is or wraps ErrDataIntegrity.
func IsDataIntegrityError(err error) bool {
	return err != nil && Is(err, ErrDataIntegrity)
}

// WrapStorage wraps a backend error as a storage error with context.
// The original error remains inspectable through the wrap chain.
func WrapStorage(err error, context string) error {
	return Wrap(Wrap(ErrStorage, err.Error()), context)
}

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...interface{}) error {
	return Wrap(ErrValidation, Newf(format, args...).Error())
}

// NewNotFoundError creates a not-found error with a formatted message.
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewDataIntegrityError creates a data-integrity error with a formatted message.
func NewDataIntegrityError(format string, args ...interface{}) error {
	return Wrap(ErrDataIntegrity, Newf(format, args...).Error())
}
