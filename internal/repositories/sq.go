package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
)

var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ErrBadQuery = errors.New("bad query")

// PgUniqueViolation and PgForeignKeyViolation are the Postgres SQLSTATE codes
// repositories translate into sentinel errors.
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)
