// Package readstore serves the query side. Read stores run against the
// pool directly; none of them participate in write transactions.
package readstore

import (
	"github.com/Masterminds/squirrel"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
