package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/config"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/metrics"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/redact"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultAcquireTimeout bounds how long a caller waits for a pooled connection
// when the configuration does not say otherwise.
const DefaultAcquireTimeout = 30 * time.Second

// PgxPool is the process-wide connection pool. It is created once by the
// composition root and handed to the gateway; callers never touch the
// underlying pgxpool.Pool directly.
type PgxPool struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	logger         *slog.Logger
}

// Ensure PgxPool implements store.ConnPool interface
var _ store.ConnPool = (*PgxPool)(nil)

// NewPool parses the connection string, opens the pool and verifies the
// database is reachable. Any error here is a startup failure.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*PgxPool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %s", redact.Error(err))
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns

	acquireTimeout := cfg.AcquireTimeout
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		slog.String("url", redact.URL(cfg.URL)),
		slog.Int("max_conns", int(poolCfg.MaxConns)),
		slog.Int("min_conns", int(poolCfg.MinConns)),
		slog.Duration("acquire_timeout", acquireTimeout))

	return &PgxPool{
		pool:           pool,
		acquireTimeout: acquireTimeout,
		logger:         logger.With(slog.String("component", "db_pool")),
	}, nil
}

// WithConn acquires one connection, runs fn with it and releases it before
// returning, including when fn panics. A broken connection or one left inside
// a transaction is destroyed by pgxpool on release instead of being reused.
func (p *PgxPool) WithConn(ctx context.Context, fn store.ConnFn) error {
	conn, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(ctx, conn)
}

func (p *PgxPool) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, classifyAcquireError(ctx, err, p.acquireTimeout)
	}
	return conn, nil
}

// classifyAcquireError separates our own acquisition deadline from the
// caller's cancellation. Only the former is a pool timeout.
func classifyAcquireError(callerCtx context.Context, err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) && callerCtx.Err() == nil {
		return fmt.Errorf("%w: no connection available after %s: %w", store.ErrPoolTimeout, timeout, err)
	}
	return fmt.Errorf("acquire connection: %w", err)
}

// Ping verifies database connectivity through the pool.
func (p *PgxPool) Ping(ctx context.Context) error {
	return p.WithConn(ctx, func(ctx context.Context, conn store.Conn) error {
		_, err := conn.Exec(ctx, "SELECT 1")
		return err
	})
}

// Stats reports pool occupancy for the metrics endpoint.
func (p *PgxPool) Stats() metrics.PoolStats {
	s := p.pool.Stat()
	return metrics.PoolStats{
		AcquiredConns: s.AcquiredConns(),
		IdleConns:     s.IdleConns(),
		TotalConns:    s.TotalConns(),
		MaxConns:      s.MaxConns(),
	}
}

// Close closes every connection. Only the composition root calls it, at shutdown.
func (p *PgxPool) Close() {
	if p.pool != nil {
		p.pool.Close()
		p.logger.Info("database connection pool closed")
	}
}
