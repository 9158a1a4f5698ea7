// Package migrations holds the embedded schema for both storage backends.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Provider returns a goose provider over the migrations for dialect.
func Provider(db *sql.DB, dialect goose.Dialect) (*goose.Provider, error) {
	var dir string
	switch dialect {
	case goose.DialectPostgres:
		dir = "postgres"
	case goose.DialectSQLite3:
		dir = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	sub, err := fs.Sub(FS, dir)
	if err != nil {
		return nil, err
	}

	return goose.NewProvider(dialect, db, sub)
}

// Up applies every pending migration and returns how many ran.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) (int, error) {
	provider, err := Provider(db, dialect)
	if err != nil {
		return 0, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	return len(results), nil
}
