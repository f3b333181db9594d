package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Conn is the subset of a pooled connection used for a single statement
// lifecycle. It is implemented by *pgxpool.Conn.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnFn runs against a connection that is only valid for the duration of the call.
type ConnFn func(ctx context.Context, conn Conn) error

// ConnPool hands out scoped connections. Implementations must release the
// connection before WithConn returns, on every exit path.
type ConnPool interface {
	WithConn(ctx context.Context, fn ConnFn) error
}
