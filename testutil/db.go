// Package testutil holds the Postgres helpers of the session-store
// integration tests. Every helper skips the calling test when
// TEST_DATABASE_URL is unset, so `go test ./...` passes without a database.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/trip-planner/migrations"
)

// DSNVar names the environment variable holding the test database URL.
const DSNVar = "TEST_DATABASE_URL"

// NewPool returns a pgx pool on the test database, closed at test cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB returns a database/sql handle on the test database for goose,
// closed at test cleanup.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQL(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Migrate applies the embedded migrations to the test database. It is meant
// for TestMain, where no *testing.T exists, and is a no-op without a DSN.
func Migrate(ctx context.Context) error {
	dsn := os.Getenv(DSNVar)
	if dsn == "" {
		return nil
	}
	db, err := openSQL(dsn)
	if err != nil {
		return fmt.Errorf("testutil.Migrate: %w", err)
	}
	defer db.Close()
	if err := migrations.Up(ctx, db); err != nil {
		return fmt.Errorf("testutil.Migrate: %w", err)
	}
	return nil
}

func openSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DSNVar)
	if dsn == "" {
		t.Skip(DSNVar + " not set; skipping integration test")
	}
	return dsn
}
