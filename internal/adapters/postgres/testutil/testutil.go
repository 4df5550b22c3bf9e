// Package testutil provides database helpers for the Postgres contract tests.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	postgres "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres"
	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenMigratedPool connects to the database named by TEST_DATABASE_URL, runs
// all migrations, truncates every table for isolation, and returns a pool.
// Tests are skipped when the variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres contract tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open migration connection: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("set goose dialect: %v", err)
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.UpContext(ctx, db, "."); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		TRUNCATE user_login_history, memberships, reviews, events, clubs, users
	`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
