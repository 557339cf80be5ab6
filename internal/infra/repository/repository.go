// Package repository holds the write side of persistence. Every
// repository is bound to a DBTX so the unit of work can hand it either
// the pool or an open transaction.
package repository

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"stayhub/internal/infra"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// classifyPgError maps storage error codes onto repository error kinds.
func classifyPgError(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return infra.KindConflict
		case pgerrcode.UniqueViolation:
			return infra.KindDuplicateKey
		case pgerrcode.ForeignKeyViolation:
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}
