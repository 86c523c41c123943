package sql

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huandu/go-sqlbuilder"

	"github.com/syssam/dbgen/dialect"
)

// Dialect renders statement text for one database dialect. Generated code
// holds one of the package level values below and builds every statement
// through it.
type Dialect string

// Dialects used by generated code.
const (
	Postgres Dialect = dialect.Postgres
	MySQL    Dialect = dialect.MySQL
	SQLite   Dialect = dialect.SQLite
)

// Quote returns s as a single-quoted SQL string literal.
// MySQL also escapes backslashes, the other dialects treat them literally.
func (d Dialect) Quote(s string) string {
	if d == MySQL {
		return "'" + escapeStringValue(s) + "'"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Ident returns name as-is when it is a plain identifier, and quoted
// with the dialect's identifier quote otherwise.
func (d Dialect) Ident(name string) string {
	if isValidIdentifier(name) {
		return name
	}
	q := `"`
	if d == MySQL {
		q = "`"
	}
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// Bytes renders a binary value as bytea hex escape text, the element form of
// Postgres bytea arrays. Use Blob for a complete literal.
func (d Dialect) Bytes(b []byte) string {
	return `\x` + hex.EncodeToString(b)
}

// Blob renders a binary value as a complete SQL literal: a quoted bytea hex
// string on Postgres and a X'..' hex literal on MySQL and SQLite.
func (d Dialect) Blob(b []byte) string {
	if d == Postgres {
		return d.Quote(d.Bytes(b))
	}
	return "X'" + hex.EncodeToString(b) + "'"
}

// Time renders t as a timestamp literal. MySQL does not accept zone offsets
// in DATETIME literals, so the time is rendered in its own location.
func (d Dialect) Time(t time.Time) string {
	if d == MySQL {
		return t.Format("2006-01-02 15:04:05.999999")
	}
	return t.Format("2006-01-02 15:04:05.999999999-07:00")
}

// InsertInto starts an INSERT statement for the given table.
func (d Dialect) InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{dialect: d, table: table}
}

// InsertBuilder accumulates the parts of an INSERT statement. Values are
// pre-quoted text fragments, one Values call per inserted row.
type InsertBuilder struct {
	dialect   Dialect
	table     string
	columns   []string
	values    [][]string
	returning []string
}

// Field appends a column to the field list.
func (b *InsertBuilder) Field(column string) *InsertBuilder {
	b.columns = append(b.columns, column)
	return b
}

// Values appends one row of pre-quoted value fragments.
func (b *InsertBuilder) Values(frags ...string) *InsertBuilder {
	b.values = append(b.values, frags)
	return b
}

// Returning requests the given columns back from the database.
// It is only supported by dialects with a RETURNING clause.
func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append(b.returning, columns...)
	return b
}

// Rows returns the number of value rows appended so far.
func (b *InsertBuilder) Rows() int {
	return len(b.values)
}

// SQL finalizes the statement. Values are passed to the statement builder as
// raw fragments, so the result carries no placeholders.
func (b *InsertBuilder) SQL() (string, error) {
	switch {
	case b.table == "":
		return "", errors.New("dialect/sql: insert: missing table name")
	case len(b.columns) == 0:
		return "", fmt.Errorf("dialect/sql: insert into %s: no fields", b.table)
	case len(b.values) == 0:
		return "", fmt.Errorf("dialect/sql: insert into %s: no values", b.table)
	case len(b.returning) > 0 && b.dialect == MySQL:
		return "", fmt.Errorf("dialect/sql: insert into %s: RETURNING is not supported by %s", b.table, b.dialect)
	}
	ib := b.dialect.flavor().NewInsertBuilder()
	ib.InsertInto(b.dialect.Ident(b.table))
	ib.Cols(b.idents(b.columns)...)
	for i, row := range b.values {
		if len(row) != len(b.columns) {
			return "", fmt.Errorf("dialect/sql: insert into %s: row %d has %d values, expected %d", b.table, i, len(row), len(b.columns))
		}
		vs := make([]any, len(row))
		for j, frag := range row {
			vs[j] = sqlbuilder.Raw(frag)
		}
		ib.Values(vs...)
	}
	if len(b.returning) > 0 {
		ib.Returning(b.idents(b.returning)...)
	}
	query, args := ib.Build()
	if len(args) > 0 {
		return "", fmt.Errorf("dialect/sql: insert into %s: unexpected placeholders", b.table)
	}
	return query, nil
}

func (b *InsertBuilder) idents(names []string) []string {
	idents := make([]string, len(names))
	for i, n := range names {
		idents[i] = b.dialect.Ident(n)
	}
	return idents
}

// flavor returns the statement builder flavor of the dialect.
func (d Dialect) flavor() sqlbuilder.Flavor {
	switch d {
	case MySQL:
		return sqlbuilder.MySQL
	case SQLite:
		return sqlbuilder.SQLite
	default:
		return sqlbuilder.PostgreSQL
	}
}
