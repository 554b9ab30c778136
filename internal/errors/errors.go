// Package errors defines the error kinds surfaced by slotlog operations.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies the kind of an AppError.
type ErrorCode string

const (
	ErrFormat       ErrorCode = "FORMAT_ERROR"     // malformed duration or date text
	ErrNotFound     ErrorCode = "NOT_FOUND"        // slot id absent from the set
	ErrCorruptState ErrorCode = "CORRUPT_STATE"    // persisted payload has the wrong shape
	ErrValidation   ErrorCode = "VALIDATION_ERROR" // empty label, negative duration, bad key
	ErrStorage      ErrorCode = "STORAGE"          // persistence read/write failure
)

// AppError is a structured error with a code, message, and optional details.
type AppError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewFormat creates an error for text that cannot be decoded.
func NewFormat(input, expected string) *AppError {
	return &AppError{
		Code:    ErrFormat,
		Message: fmt.Sprintf("invalid value %q (expected %s)", input, expected),
		Details: map[string]any{"input": input},
	}
}

// NewNotFound creates an error for a slot id that does not exist in the set.
func NewNotFound(id int64) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("slot not found: %d", id),
		Details: map[string]any{"id": id},
	}
}

// NewCorruptState creates an error for a persisted value that cannot be decoded.
func NewCorruptState(key string, err error) *AppError {
	return &AppError{
		Code:    ErrCorruptState,
		Message: fmt.Sprintf("persisted value %q is corrupt", key),
		Details: map[string]any{"key": key},
		Err:     err,
	}
}

// NewValidation creates an error for input that would violate an invariant.
func NewValidation(msg string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: msg,
	}
}

// NewStorage wraps a persistence failure.
func NewStorage(op string, err error) *AppError {
	return &AppError{
		Code:    ErrStorage,
		Message: op,
		Err:     err,
	}
}

// Is reports whether err, or any error it wraps, is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
