package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/metrics"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/observability"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
)

// Execution modes, used in logs, span names and metric labels.
const (
	ModeCommit = "commit"
	ModeObject = "object"
	ModeArray  = "array"
	ModeValue  = "value"
)

// returningPattern decides whether a commit-mode statement produces a value.
// It is a plain text match: a RETURNING inside a string literal or comment
// also counts, and lowercase "returning" does not.
var returningPattern = regexp.MustCompile(`\bRETURNING\b`)

// HasReturning reports whether sql contains the whole word RETURNING.
func HasReturning(sql string) bool {
	return returningPattern.MatchString(sql)
}

// QueryRecorder receives one observation per executed statement.
type QueryRecorder interface {
	ObserveQuery(mode, status string, d time.Duration)
}

// Db executes SQL against the shared pool and shapes results. It holds no
// per-call state and is safe for concurrent use.
type Db struct {
	pool     store.ConnPool
	logger   *slog.Logger
	recorder QueryRecorder
}

// Ensure Db implements store.Gateway interface
var _ store.Gateway = (*Db)(nil)

// NewDb creates a gateway over pool. recorder may be nil.
func NewDb(pool store.ConnPool, logger *slog.Logger, recorder QueryRecorder) *Db {
	if logger == nil {
		logger = slog.Default()
	}
	return &Db{
		pool:     pool,
		logger:   logger.With(slog.String("component", "db")),
		recorder: recorder,
	}
}

// QueryCommit runs sql inside a transaction and commits it once. When the
// statement contains RETURNING, the first column of the first row is
// captured before the commit. Failures are logged and reported through the
// result; the transaction is rolled back.
func (d *Db) QueryCommit(ctx context.Context, sql string, params store.Params) store.CommitResult {
	caller := callerLocation(2)
	returning := HasReturning(sql)

	ctx, done := d.start(ctx, ModeCommit, sql, params, observability.AttrReturning.Bool(returning))

	var value any
	err := d.pool.WithConn(ctx, func(ctx context.Context, conn store.Conn) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		committed := false
		defer func() {
			if !committed {
				if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
					d.logger.Warn("rollback failed", slog.String("error", rbErr.Error()))
				}
			}
		}()

		args := pgx.StrictNamedArgs(params)
		if returning {
			if err := tx.QueryRow(ctx, sql, args).Scan(&value); err != nil {
				return err
			}
		} else {
			if _, err := tx.Exec(ctx, sql, args); err != nil {
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		committed = true
		return nil
	})

	if err != nil {
		d.logCommitFailure(ctx, caller, err)
		done(metrics.StatusError, err)
		return store.CommitFailure(&QueryError{Mode: ModeCommit, Err: MapError(err)})
	}

	done(metrics.StatusOK, nil)
	if returning {
		return store.CommittedWithValue(value)
	}
	return store.Committed()
}

// QueryObjectJSON returns the first row of sql as a JSON object built by
// PostgreSQL. No matching row yields {}.
func (d *Db) QueryObjectJSON(ctx context.Context, sql string, params store.Params) (json.RawMessage, error) {
	wrapped := wrapObject(sql)
	ctx, done := d.start(ctx, ModeObject, wrapped, params)

	var raw []byte
	err := d.pool.WithConn(ctx, func(ctx context.Context, conn store.Conn) error {
		return conn.QueryRow(ctx, wrapped, pgx.StrictNamedArgs(params)).Scan(&raw)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		done(metrics.StatusEmpty, nil)
		return json.RawMessage(emptyObject), nil
	}
	if err != nil {
		d.logQueryFailure(ctx, ModeObject, err)
		done(metrics.StatusError, err)
		return nil, &QueryError{Mode: ModeObject, Err: MapError(err)}
	}

	done(metrics.StatusOK, nil)
	return json.RawMessage(raw), nil
}

// QueryArrayJSON returns every row of sql, in order, as a JSON array built
// by PostgreSQL. No matching rows yields []. A nil result with a nil error
// means the wrapper itself produced no row.
func (d *Db) QueryArrayJSON(ctx context.Context, sql string, params store.Params) (json.RawMessage, error) {
	wrapped := wrapArray(sql)
	ctx, done := d.start(ctx, ModeArray, wrapped, params)

	var raw []byte
	err := d.pool.WithConn(ctx, func(ctx context.Context, conn store.Conn) error {
		return conn.QueryRow(ctx, wrapped, pgx.StrictNamedArgs(params)).Scan(&raw)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		done(metrics.StatusEmpty, nil)
		return nil, nil
	}
	if err != nil {
		d.logQueryFailure(ctx, ModeArray, err)
		done(metrics.StatusError, err)
		return nil, &QueryError{Mode: ModeArray, Err: MapError(err)}
	}

	done(metrics.StatusOK, nil)
	return json.RawMessage(raw), nil
}

// QueryValue returns the first column of the first row of sql, unwrapped.
// No rows is reported as store.ErrEmptyResult.
func (d *Db) QueryValue(ctx context.Context, sql string, params store.Params) (any, error) {
	ctx, done := d.start(ctx, ModeValue, sql, params)

	var value any
	err := d.pool.WithConn(ctx, func(ctx context.Context, conn store.Conn) error {
		return conn.QueryRow(ctx, sql, pgx.StrictNamedArgs(params)).Scan(&value)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		done(metrics.StatusEmpty, store.ErrEmptyResult)
		return nil, &QueryError{Mode: ModeValue, Err: fmt.Errorf("%w: %w", store.ErrEmptyResult, err)}
	}
	if err != nil {
		d.logQueryFailure(ctx, ModeValue, err)
		done(metrics.StatusError, err)
		return nil, &QueryError{Mode: ModeValue, Err: MapError(err)}
	}

	done(metrics.StatusOK, nil)
	return value, nil
}

// start logs the statement, opens a span and returns a function that closes
// both the span and the metrics observation.
func (d *Db) start(
	ctx context.Context,
	mode, sql string,
	params store.Params,
	attrs ...attribute.KeyValue,
) (context.Context, func(status string, err error)) {
	hash := statementHash(sql)

	d.logger.DebugContext(ctx, "executing sql",
		slog.String("mode", mode),
		slog.String("statement_hash", hash),
		slog.String("sql", sql),
		slog.Any("params", map[string]any(params)))

	attrs = append(attrs,
		observability.AttrQueryMode.String(mode),
		observability.AttrStatementHash.String(hash))
	ctx, span := observability.StartSpan(ctx, "db."+mode, attrs...)

	began := time.Now()
	return ctx, func(status string, err error) {
		if d.recorder != nil {
			d.recorder.ObserveQuery(mode, status, time.Since(began))
		}
		if err != nil {
			observability.SetSpanError(span, err)
		} else {
			observability.SetSpanOK(span)
		}
		span.End()
	}
}

func (d *Db) logCommitFailure(ctx context.Context, caller string, err error) {
	if store.IsPoolTimeout(err) {
		d.logger.ErrorContext(ctx, "connection pool timeout expired",
			slog.String("caller", caller),
			slog.String("error", err.Error()))
		return
	}

	attrs := []any{
		slog.String("caller", caller),
		slog.String("error", err.Error()),
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		attrs = append(attrs,
			slog.String("pgcode", pgErr.Code),
			slog.String("pgerror", pgErr.Message))
	}
	d.logger.ErrorContext(ctx, "commit query failed", attrs...)
}

func (d *Db) logQueryFailure(ctx context.Context, mode string, err error) {
	attrs := []any{
		slog.String("mode", mode),
		slog.String("error", err.Error()),
	}
	if code := PgCode(err); code != "" {
		attrs = append(attrs, slog.String("pgcode", code))
	}
	d.logger.ErrorContext(ctx, "sql query failed", attrs...)
}

const (
	emptyObject = "{}"
	emptyArray  = "[]"
)

func wrapObject(sql string) string {
	return "SELECT COALESCE(row_to_json(object_row),'" + emptyObject + "'::json) FROM (\n" +
		trimStatement(sql) + "\n) object_row"
}

func wrapArray(sql string) string {
	return "SELECT COALESCE(array_to_json(array_agg(row_to_json(array_row))),'" + emptyArray + "'::json) FROM (\n" +
		trimStatement(sql) + "\n) array_row"
}

// trimStatement drops trailing whitespace and semicolons so the statement can
// be nested as a subquery.
func trimStatement(sql string) string {
	return strings.TrimRight(sql, " \t\r\n;")
}

func statementHash(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:8])
}

// callerLocation returns file:line of the frame skip levels above it.
func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
