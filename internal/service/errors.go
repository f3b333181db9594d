// Package service provides the Cruddur use cases: publishing activities and
// serving the home and notification feeds.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrActivityNotFound indicates that no activity matches the requested id.
	// API layer should map this to HTTP 404 Not Found.
	ErrActivityNotFound = errors.New("activity not found")
)

// ActivityServiceError wraps errors from the activity service with context.
type ActivityServiceError struct {
	// Operation is the operation that failed (e.g., "home_activities", "show_activity")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ActivityServiceError.
func (e *ActivityServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("activity service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("activity service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ActivityServiceError) Unwrap() error {
	return e.Err
}

// NewActivityServiceError creates a new ActivityServiceError.
// It returns known sentinel errors directly without wrapping.
func NewActivityServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrActivityNotFound) {
		return ErrActivityNotFound
	}

	return &ActivityServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
