package store

import "errors"

// Common store errors used across the data-access layer.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when a statement violates a constraint.
	// Check the wrapped error for the constraint details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTemplateNotFound is returned when no SQL template exists for the
	// requested path segments. It indicates a deployment defect.
	ErrTemplateNotFound = errors.New("sql template not found")

	// ErrPoolTimeout is returned when no pooled connection became available
	// within the acquisition timeout.
	ErrPoolTimeout = errors.New("connection pool timeout expired")

	// ErrEmptyResult is returned by scalar queries that produce no rows.
	ErrEmptyResult = errors.New("query returned no rows")

	// ErrNoReturnedValue is returned when a commit result is asked for a value
	// but the statement declared no RETURNING clause.
	ErrNoReturnedValue = errors.New("statement returned no value")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsPoolTimeout checks if the error came from waiting on the connection pool.
func IsPoolTimeout(err error) bool {
	return errors.Is(err, ErrPoolTimeout)
}
