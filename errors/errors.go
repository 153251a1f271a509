// Package errors provides error handling for chronos.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for the CLI
//
// On top of that it defines the sentinels that separate the three failure
// classes of the validator and resolver:
//
//	// Caller-contract violation: programmer error in the calling layer
//	errors.ErrInvalidIdentifier
//
//	// Configuration error: the host registered the wrong reference systems
//	errors.ErrUnknownReferenceSystem
//	errors.ErrReferenceSystemKind
//
// Data incompleteness is never an error and logical inconsistencies are
// reported as validator issues, so neither has a sentinel here.
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

// AssertionFailedf reports an internal invariant violation.
var AssertionFailedf = crdb.AssertionFailedf

var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrInvalidIdentifier indicates a null or blank entity identifier was
	// passed by the caller.
	ErrInvalidIdentifier = New("invalid identifier")

	// ErrUnknownReferenceSystem indicates a reference system name that is not
	// registered in the reference-system registry.
	ErrUnknownReferenceSystem = New("unknown reference system")

	// ErrReferenceSystemKind indicates a registered reference system of the
	// wrong kind for the requested operation (calendar vs position axis).
	ErrReferenceSystemKind = New("reference system has wrong kind")

	// ErrIncomparable indicates two coordinates tied to different reference systems.
	ErrIncomparable = New("incomparable coordinates")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsContractViolation reports whether err signals misuse by the caller
// (invalid identifiers or malformed requests).
func IsContractViolation(err error) bool {
	return err != nil && IsAny(err, ErrInvalidIdentifier, ErrInvalidRequest)
}

// IsConfigurationError reports whether err was caused by the reference-system
// registry rather than by the fact graph.
func IsConfigurationError(err error) bool {
	return err != nil && IsAny(err, ErrUnknownReferenceSystem, ErrReferenceSystemKind)
}

// NewInvalidIdentifierError creates a contract-violation error naming the
// parameter that carried the bad identifier.
func NewInvalidIdentifierError(param string) error {
	return Wrapf(ErrInvalidIdentifier, "%s must be a non-empty identifier", param)
}

// NewUnknownReferenceSystemError creates a configuration error for name.
func NewUnknownReferenceSystemError(name string) error {
	return WithHint(
		Wrapf(ErrUnknownReferenceSystem, "%q", name),
		"register the reference system in the registry or under [[reference_systems]] in chronos.toml",
	)
}

// NewReferenceSystemKindError creates a configuration error for a reference
// system registered with the wrong kind.
func NewReferenceSystemKindError(name, want, got string) error {
	return Wrapf(ErrReferenceSystemKind, "%q is a %s system, %s required", name, got, want)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
