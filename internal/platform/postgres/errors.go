package postgres

import (
	"errors"
	"fmt"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// QueryError wraps a failure from one of the gateway executors with the mode
// that produced it.
type QueryError struct {
	Mode string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Mode, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// MapError maps a database error to an appropriate store error, wrapping the
// original so SQLSTATE details stay reachable through errors.As.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	case IsForeignKeyViolation(err):
		return fmt.Errorf(
			"%w: foreign key violation (%s): %w",
			store.ErrInvalidEntity,
			pgErr.ConstraintName,
			err,
		)
	case IsCheckConstraintViolation(err):
		return fmt.Errorf(
			"%w: check constraint violation (%s): %w",
			store.ErrInvalidEntity,
			pgErr.ConstraintName,
			err,
		)
	case IsNotNullViolation(err):
		return fmt.Errorf(
			"%w: not null violation (%s): %w",
			store.ErrInvalidEntity,
			pgErr.ColumnName,
			err,
		)
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	return PgCode(err) == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	return PgCode(err) == foreignKeyViolationCode
}

// IsCheckConstraintViolation checks if the given error is a PostgreSQL check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	return PgCode(err) == checkViolationCode
}

// IsNotNullViolation checks if the given error is a PostgreSQL not null constraint violation.
func IsNotNullViolation(err error) bool {
	return PgCode(err) == notNullViolationCode
}

// PgCode returns the SQLSTATE of a PostgreSQL error anywhere in the chain,
// or "" if there is none.
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
