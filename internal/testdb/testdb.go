package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/config"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/postgres"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

var migrateOnce sync.Once

// DatabaseURL returns the integration database URL, or "" when none is set.
func DatabaseURL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}
	return os.Getenv("CRUDDUR_TEST_DB_URL")
}

// ShouldSkipDatabaseTest reports whether no integration database is configured.
func ShouldSkipDatabaseTest() bool {
	return DatabaseURL() == ""
}

// ProjectRoot locates the module root by walking up to the nearest go.mod.
func ProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

// TemplateDir returns the absolute path of the shipped SQL templates.
func TemplateDir(t *testing.T) string {
	t.Helper()
	root, err := ProjectRoot()
	require.NoError(t, err, "Failed to find project root")
	return filepath.Join(root, "db", "sql")
}

// MigrationsDir returns the absolute path of the test schema migrations.
func MigrationsDir(t *testing.T) string {
	t.Helper()
	root, err := ProjectRoot()
	require.NoError(t, err, "Failed to find project root")
	return filepath.Join(root, "db", "migrations")
}

// ApplyMigrations brings the schema in db up to date with migrationsDir.
func ApplyMigrations(db *sql.DB, migrationsDir string) error {
	if _, err := os.Stat(migrationsDir); err != nil {
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	goose.SetTableName("schema_migrations")
	goose.SetBaseFS(os.DirFS(migrationsDir))
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations in %s: %w", migrationsDir, err)
	}
	return nil
}

// Open returns a database/sql handle with the schema applied. The test is
// skipped when no database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or CRUDDUR_TEST_DB_URL not set - skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	var migrateErr error
	migrateOnce.Do(func() {
		goose.SetLogger(&testGooseLogger{t: t})
		migrateErr = ApplyMigrations(db, MigrationsDir(t))
	})
	require.NoError(t, migrateErr, "Failed to run migrations")

	return db
}

// NewPool opens a gateway pool against the integration database.
func NewPool(t *testing.T, logger *slog.Logger) *postgres.PgxPool {
	t.Helper()

	Open(t)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
		URL:            DatabaseURL(),
		MaxConns:       4,
		AcquireTimeout: TestTimeout,
	}, logger)
	require.NoError(t, err, "Failed to create connection pool")
	t.Cleanup(pool.Close)

	return pool
}

// Reset empties the application tables.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE public.activities, public.users CASCADE")
	require.NoError(t, err, "Failed to truncate tables")
}

// SeedUser inserts a user and returns its uuid.
func SeedUser(t *testing.T, db *sql.DB, handle, displayName string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(
		`INSERT INTO public.users (display_name, handle, email) VALUES ($1, $2, $3) RETURNING uuid`,
		displayName, handle, handle+"@example.com",
	).Scan(&id)
	require.NoError(t, err, "Failed to seed user %s", handle)
	return id
}

// SeedActivity inserts an activity for userID and returns its uuid.
func SeedActivity(t *testing.T, db *sql.DB, userID uuid.UUID, message string, createdAt time.Time) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(
		`INSERT INTO public.activities (user_uuid, message, expires_at, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING uuid`,
		userID, message, createdAt.Add(24*time.Hour), createdAt,
	).Scan(&id)
	require.NoError(t, err, "Failed to seed activity")
	return id
}

// testGooseLogger routes goose output through the test log.
type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log("Goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatal("Goose fatal error: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
