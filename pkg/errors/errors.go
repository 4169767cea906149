// Package errors provides structured error types for the treesearch engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, HTTP service, and library API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the four kinds named by the reconstruction engine's error
// handling design: parameter validation, I/O, serialized-format, and internal
// invariant violations, plus not-found and internal codes for the cache and
// HTTP service.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParam, "maxDepth must be in [1,16], got %d", depth)
//	if errors.Is(err, errors.ErrCodeParam) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write tree file %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the four kinds named by the engine's error handling design,
// followed by the not-found and internal codes.
const (
	// ErrCodeParam marks invalid generation or request parameters. No tree
	// (or match result) is returned; the caller must correct its input.
	ErrCodeParam Code = "PARAM_ERROR"

	// ErrCodeIO marks a failure writing or reading a tree artifact. A
	// partial file may exist on disk or in a cache backend.
	ErrCodeIO Code = "IO_ERROR"

	// ErrCodeFormat marks a deserialization failure: an inconsistent tag,
	// an unknown link type, or a back-reference out of range. Any
	// partially built tree must be discarded.
	ErrCodeFormat Code = "FORMAT_ERROR"

	// ErrCodeInvariant marks a violated internal invariant (e.g. a road's
	// common-hit set grew instead of shrinking). This indicates a bug, not
	// a recoverable condition, and is raised via panic rather than a
	// returned error; see Invariant.
	ErrCodeInvariant Code = "INVARIANT_VIOLATION"

	// ErrCodeNotFound marks a missing cache entry or tree key.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeInternal marks an unexpected internal error not covered by
	// the above, surfaced as a 500 from the HTTP service.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Invariant panics with an *Error carrying ErrCodeInvariant. It is used for
// conditions the engine's design treats as fatal bugs rather than recoverable
// input errors — e.g. a road's common-hit set growing across an Add call.
// The CLI lets the panic terminate the process; the HTTP service recovers it
// at the handler boundary and responds 500.
func Invariant(format string, args ...any) {
	panic(New(ErrCodeInvariant, format, args...))
}

// RecoverInvariant recovers a panic raised by Invariant and stores it in err.
// Other panic values are re-raised. Intended for use via defer at a service
// boundary (an HTTP handler, a worker goroutine) that must not crash the
// whole process on an internal assertion failure.
func RecoverInvariant(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(*Error); ok && e.Code == ErrCodeInvariant {
			*err = e
			return
		}
		panic(r)
	}
}
