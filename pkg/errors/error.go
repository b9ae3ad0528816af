// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, configuration, order tickets
//   - Data/Resource errors (200-299): Data not found, query failures, unavailable resources
//   - Terminal errors (300-399): Terminal bridge availability, initialization, login
//   - Trading errors (500-599): Order execution and position management errors
//   - Journal errors (600-699): Order journal persistence errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeSymbolNotFound, "Symbol %s not found", symbol)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeTerminalUnavailable, "terminal bridge unreachable", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeNotConnected) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// RejectionError represents a trade request the terminal answered with a
// return code other than done.
type RejectionError struct {
	Retcode int    // Terminal return code
	Comment string // Terminal comment attached to the result
	Message string // Human-readable message
}

// NewRejectionError creates a new RejectionError.
func NewRejectionError(retcode int, comment, message string) *RejectionError {
	return &RejectionError{
		Retcode: retcode,
		Comment: comment,
		Message: message,
	}
}

// NewRejectionErrorf creates a new RejectionError with a formatted message.
func NewRejectionErrorf(retcode int, comment, format string, args ...any) *RejectionError {
	return &RejectionError{
		Retcode: retcode,
		Comment: comment,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	return e.Message
}

// IsRejectionError checks if an error is a RejectionError.
// It uses errors.As to check the error chain.
func IsRejectionError(err error) bool {
	var rejectionErr *RejectionError

	return errors.As(err, &rejectionErr)
}

// Message returns the human-readable message of err without the code prefix.
// Errors that are not coded return err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}

	var rejectionErr *RejectionError
	if errors.As(err, &rejectionErr) {
		return rejectionErr.Message
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return err.Error()
}
