package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX, dialect Dialect) *Queries {
	return &Queries{db: db, dialect: dialect}
}

type Queries struct {
	db      DBTX
	dialect Dialect
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db:      tx,
		dialect: q.dialect,
	}
}

func (q *Queries) Dialect() Dialect {
	return q.dialect
}

// rebind rewrites ? placeholders into $n for postgres.
func (q *Queries) rebind(query string) string {
	if q.dialect != DialectPostgres {
		return query
	}
	return Rebind(query)
}

// jsonParam is the placeholder for a JSON column value.
func (q *Queries) jsonParam() string {
	if q.dialect == DialectPostgres {
		return "CAST(? AS JSONB)"
	}
	return "?"
}

// Rebind converts ? placeholders into ordinal $n placeholders. Question marks
// inside single-quoted literals are left alone.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
