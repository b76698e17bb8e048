// Package errors provides structured error types for nbkernel.
//
// Every failure the patcher can produce carries a [Code] so the CLI and tests
// can tell a missing file from a malformed notebook without string matching.
//
// # Error Codes
//
//   - FILE_ACCESS: the notebook path is missing, unreadable or unwritable
//   - PARSE_ERROR: the notebook (or config file) is not valid JSON (TOML)
//   - KEY_LOOKUP: the language selector has no entry in the lookup table
//   - STRUCTURE_ERROR: the document has no usable metadata object
//   - INVALID_INPUT: the command line is incomplete or contradictory
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeKeyLookup, "unknown language %q", s)
//	if errors.Is(err, errors.ErrCodeKeyLookup) {
//	    // handle bad selector
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileAccess, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Notebook I/O errors
	ErrCodeFileAccess Code = "FILE_ACCESS"
	ErrCodeParse      Code = "PARSE_ERROR"
	ErrCodeStructure  Code = "STRUCTURE_ERROR"

	// Selector and command-line errors
	ErrCodeKeyLookup    Code = "KEY_LOOKUP"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Internal errors
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
