package postgres

import (
	"fmt"
	"strings"

	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
)

var dialect = drivers.Dialect{
	LQ:                   '"',
	RQ:                   '"',
	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

// NewQuery builds a PostgreSQL sqlboiler query from query mods.
func NewQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	return q
}

// InsertSQL renders "INSERT INTO table (cols) VALUES ($1..$n)" followed by suffix
// (ON CONFLICT / RETURNING clauses).
func InsertSQL(table string, columns []string, suffix string) string {
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		strmangle.IdentQuote('"', '"', table),
		strings.Join(strmangle.IdentQuoteSlice('"', '"', columns), ", "),
		strmangle.Placeholders(dialect.UseIndexPlaceholders, len(columns), 1, 1),
	)
	if suffix != "" {
		sql += " " + suffix
	}
	return sql
}

// ReturningSQL renders a RETURNING clause for columns.
func ReturningSQL(columns []string) string {
	return "RETURNING " + strings.Join(strmangle.IdentQuoteSlice('"', '"', columns), ", ")
}

// SetSQL renders `"a" = $start, "b" = $start+1` for an UPDATE statement.
func SetSQL(columns []string, start int) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("%s = $%d", strmangle.IdentQuote('"', '"', c), start+i)
	}
	return strings.Join(parts, ", ")
}
