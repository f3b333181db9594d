package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow returns fixed values or an error from Scan.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) {
			break
		}
		switch p := d.(type) {
		case *any:
			*p = r.values[i]
		case *[]byte:
			b, _ := r.values[i].([]byte)
			*p = b
		}
	}
	return nil
}

// statement records one call made through the fake connection or transaction.
type statement struct {
	kind string
	sql  string
	args []any
}

// fakeConn scripts the outcome of a single statement lifecycle and records
// every call made against it.
type fakeConn struct {
	mu sync.Mutex

	beginErr    error
	row         fakeRow
	execErr     error
	commitErr   error
	rollbackErr error

	statements []statement
	begins     int
	commits    int
	rollbacks  int
}

func (c *fakeConn) Begin(ctx context.Context) (pgx.Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.begins++
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return &fakeTx{conn: c}, nil
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.record("exec", sql, args)
	return pgconn.NewCommandTag("INSERT 0 1"), c.execErr
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	c.record("query_row", sql, args)
	return c.row
}

func (c *fakeConn) record(kind, sql string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statements = append(c.statements, statement{kind: kind, sql: sql, args: args})
}

func (c *fakeConn) lastStatement() statement {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.statements) == 0 {
		return statement{}
	}
	return c.statements[len(c.statements)-1]
}

// fakeTx forwards statements to its connection. Methods the gateway never
// calls are left to the embedded nil interface.
type fakeTx struct {
	pgx.Tx
	conn *fakeConn
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.conn.Exec(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.conn.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	t.conn.commits++
	return t.conn.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	t.conn.rollbacks++
	return t.conn.rollbackErr
}

// fakePool hands out the same fakeConn and counts acquisitions.
type fakePool struct {
	mu         sync.Mutex
	conn       *fakeConn
	acquireErr error
	acquired   int
	released   int
}

func (p *fakePool) WithConn(ctx context.Context, fn store.ConnFn) error {
	if p.acquireErr != nil {
		return p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.released++
		p.mu.Unlock()
	}()
	return fn(ctx, p.conn)
}

func (p *fakePool) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired, p.released
}

type observation struct {
	mode   string
	status string
}

type fakeRecorder struct {
	mu           sync.Mutex
	observations []observation
}

func (r *fakeRecorder) ObserveQuery(mode, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observations = append(r.observations, observation{mode: mode, status: status})
}

func (r *fakeRecorder) last() observation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.observations) == 0 {
		return observation{}
	}
	return r.observations[len(r.observations)-1]
}
