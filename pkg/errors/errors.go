// Package errors provides structured error types for Apollon.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures, detected before generation
//   - DEGENERATE_* / ARITHMETIC_*: Geometric configurations that cannot be drawn
//   - *_NOT_FOUND: Color scheme lookups that cannot be satisfied
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "curvature can't be 0")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidSchemeData, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidSchemeData Code = "INVALID_SCHEME_DATA"

	// Geometry errors
	ErrCodeDegenerateConfiguration Code = "DEGENERATE_CONFIGURATION"
	ErrCodeArithmeticDegenerate    Code = "ARITHMETIC_DEGENERATE"
	ErrCodeNoEnclosingCircle       Code = "NO_ENCLOSING_CIRCLE"

	// Color scheme errors
	ErrCodeSchemeNotFound     Code = "SCHEME_NOT_FOUND"
	ErrCodeResolutionNotFound Code = "RESOLUTION_NOT_FOUND"
	ErrCodeResolutionMismatch Code = "RESOLUTION_MISMATCH"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// UserMessage returns the message without code prefixes, followed by the
// message of the cause if there is one:
//
//	read config /etc/apollon.toml: open /etc/apollon.toml: permission denied
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the system. These are the errors an HTTP handler answers with 4xx.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeDegenerateConfiguration, ErrCodeArithmeticDegenerate,
		ErrCodeResolutionMismatch:
		return true
	}
	return false
}

// IsNotFound reports whether err is a scheme or resolution lookup failure.
func IsNotFound(err error) bool {
	code := GetCode(err)
	return code == ErrCodeSchemeNotFound || code == ErrCodeResolutionNotFound
}
