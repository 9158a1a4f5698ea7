// Package repotest runs repository tests against a live Postgres.
package repotest

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	"github.com/Fardeen26/flashfeed/internal/migrations"
	pgxconf "github.com/Fardeen26/flashfeed/pkg/pgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// EnvPostgresURL names the connection url used by Postgres. Tests skip when it is unset.
const EnvPostgresURL = "FLASHFEED_TEST_POSTGRES_URL"

// Postgres returns a pool pinned to a fresh, migrated schema that is dropped
// when the test ends.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connURL := os.Getenv(EnvPostgresURL)
	if connURL == "" {
		t.Skipf("%s not set", EnvPostgresURL)
	}

	ctx := context.Background()
	admin, err := pgxpool.New(ctx, connURL)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(admin.Close)

	schema := "flashfeed_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	quoted := pgx.Identifier{schema}.Sanitize()
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+quoted); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec(context.Background(), "DROP SCHEMA "+quoted+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
	})

	db, err := sql.Open("postgres", withSearchPath(connURL, schema))
	if err != nil {
		t.Fatalf("open migration db: %v", err)
	}
	defer db.Close()
	if _, err := migrations.Up(ctx, db, goose.DialectPostgres); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pc, err := pgxconf.PoolConfig(connURL, 4, schema)
	if err != nil {
		t.Fatalf("pool config: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// User builds a fixture user whose external id and names derive from id.
func User(id string, createdAt time.Time) domain.User {
	return domain.User{
		ID:         id,
		ExternalID: "ext-" + id,
		Username:   id,
		FullName:   "User " + id,
		ImageURL:   "https://img/" + id,
		CreatedAt:  createdAt,
	}
}

func withSearchPath(connURL, schema string) string {
	sep := "?"
	if strings.Contains(connURL, "?") {
		sep = "&"
	}
	return connURL + sep + "search_path=" + schema
}
