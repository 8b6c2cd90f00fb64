// Package errors defines the structured error surface shared by the HTTP
// API and the CLI.
//
// Domain packages return their own typed errors (snapshot.MalformedKeyError,
// graph sentinel errors); this package exists at the boundaries, where an
// error has to travel as JSON or be shown to a person. Every boundary error
// carries a machine-readable [Code], which the server maps to an HTTP
// status and the CLI uses to pick an exit path.
//
// Codes group by prefix: INVALID_* for rejected input, *_NOT_FOUND for
// missing things, STORE_/CACHE_/RENDER_ for backend failures, and
// INTERNAL_ERROR for everything that should not happen.
//
//	err := errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no processes")
//	if errors.Is(err, errors.ErrCodeInvalidSnapshot) { ... }
//
//	err := errors.Wrap(errors.ErrCodeStoreError, origErr, "saving snapshot %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code identifies an error category to machines: the API sends it in the
// error envelope, clients switch on it.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"
	ErrCodeInvalidKey      Code = "INVALID_KEY"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidName     Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeScenarioNotFound Code = "SCENARIO_NOT_FOUND"
	ErrCodeSnapshotNotFound Code = "SNAPSHOT_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Persistence and rendering errors
	ErrCodeStoreError   Code = "STORE_ERROR"
	ErrCodeCacheError   Code = "CACHE_ERROR"
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a human-readable message and an optional cause.
// The cause stays reachable through Unwrap, so stdlib errors.Is and
// errors.As keep working across the boundary.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an existing cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain carries code. It is
// named for call-site symmetry with stdlib errors.Is; shadow the import
// when both are needed.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the first *Error in the chain, or "" when
// there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns what should be shown to a person: the message
// without its code prefix for *Error, the plain Error() text otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// StoreUnavailableError reports a persistence backend that cannot be
// reached. History and cache callers treat it as a signal to fall back to
// the in-memory backend rather than fail the request.
type StoreUnavailableError struct {
	Backend string // "mongo", "redis", "file"
	Cause   error
}

func (e *StoreUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store %s unavailable: %v", e.Backend, e.Cause)
	}
	return fmt.Sprintf("store %s unavailable", e.Backend)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Cause }

// Code classifies the failure for the API error envelope.
func (e *StoreUnavailableError) Code() Code { return ErrCodeStoreError }
