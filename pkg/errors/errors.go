package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooLarge indicates an upload over the configured size limit
	ErrTooLarge = errors.New("payload too large")

	// ErrUnavailable indicates a dependency that is not ready yet
	ErrUnavailable = errors.New("unavailable")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// FieldError is an invalid input error tied to one form field. Handlers
// report it in the {field, message} shape.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap makes FieldError match ErrInvalidInput
func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// InvalidInputError creates an invalid input error for a field
func InvalidInputError(field, reason string) error {
	return &FieldError{Field: field, Message: reason}
}

// TooLargeError creates a size limit error with context
func TooLargeError(what string, limit int64) error {
	return fmt.Errorf("%s over %d bytes: %w", what, limit, ErrTooLarge)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
