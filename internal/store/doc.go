// Package store defines the contracts of the data-access layer: scoped
// connection pooling, the four result-shaping query modes, SQL template
// loading, and the error taxonomy shared by their implementations.
//
// The PostgreSQL implementation lives in internal/platform/postgres.
package store
