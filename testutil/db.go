// Package testutil provides database helpers shared by the repo and
// migration integration test suites. Every helper skips its test when
// TEST_DATABASE_URL is unset, so `go test ./...` stays green on machines
// without a Postgres instance.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
)

// poolMaxConns is sized above the fan-out of the concurrent promo-usage
// tests, which race 20 goroutines against one counter row. The pgxpool
// default (GOMAXPROCS-based) would serialize those goroutines on a handful
// of connections and hide the contention the tests exist to exercise.
const poolMaxConns = 25

// NewPool opens a *pgxpool.Pool against TEST_DATABASE_URL, skipping the test
// when the variable is unset. The pool is closed via t.Cleanup when the test
// and its subtests finish.
//
// Repo tests normally run inside a transaction taken from this pool and
// rolled back per test; tests that need committed, cross-connection rows
// (the usage-counter races) use the pool directly.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	cfg, err := pgxpool.ParseConfig(testDatabaseURL(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: parse config: %v", err)
	}
	cfg.MaxConns = poolMaxConns

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens a *sql.DB against TEST_DATABASE_URL via the pgx stdlib
// driver, skipping the test when the variable is unset. goose only speaks
// database/sql, so the migration tests use this instead of NewPool. The
// handle is closed via t.Cleanup.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDatabaseURL(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB opens a *sql.DB for the given DSN and panics on any error.
// It exists for the repo suite's TestMain, which migrates the schema before
// any *testing.T is available. Callers close the returned handle.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: open: " + err.Error())
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		panic("testutil.MustOpenSQLDB: ping: " + err.Error())
	}
	return db
}

// testDatabaseURL returns TEST_DATABASE_URL, skipping the test when it is
// not set.
func testDatabaseURL(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
