// Package testdb provides utilities for database integration tests.
//
// Tests that need PostgreSQL call Open or NewPool, which skip the test when
// no database URL is configured and otherwise apply the schema in
// db/migrations with goose. Tables are shared, so integration tests that use
// this package should not run in parallel with each other and should call
// Reset before seeding their own rows. Run integration packages one at a
// time:
//
//	go test -tags integration -p 1 ./...
//
// The database URL is read from DATABASE_URL, falling back to
// CRUDDUR_TEST_DB_URL.
package testdb
