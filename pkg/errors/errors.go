package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccessDenied indicates the user doesn't have permission
	ErrAccessDenied = errors.New("access denied")

	// ErrConflict indicates a conflict with existing data
	ErrConflict = errors.New("conflict")

	// ErrUnavailable indicates the backing store could not be reached
	ErrUnavailable = errors.New("store unavailable")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// UnavailableError wraps a store connectivity failure
func UnavailableError(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
