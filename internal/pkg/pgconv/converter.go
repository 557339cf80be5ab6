// Package pgconv converts pgtype scan targets into plain Go values.
package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func TimeFromPgtype(ts pgtype.Timestamptz) time.Time {
	return ts.Time
}

func TimePtrFromPgtype(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	return &ts.Time
}

func DateFromPgtype(d pgtype.Date) time.Time {
	return d.Time
}

// IsNoRows matches the no-rows sentinel of both database/sql and pgx.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
