// Package postgres is the database access gateway. It owns the pgx
// connection pool, loads SQL templates from disk and executes them in one of
// four modes: commit, JSON object, JSON array and scalar value. JSON shaping
// happens inside PostgreSQL; the gateway only wraps the template text.
package postgres
