package schema

import (
	"context"
	"strings"

	"github.com/syssam/dbgen/dialect"
	"github.com/syssam/dbgen/dialect/sql"
)

// SQLite reads table metadata with pragma_table_info and sqlite_master.
// Column types are the declared types, e.g. INTEGER or VARCHAR(20).
type SQLite struct {
	drv    dialect.ExecQuerier
	config inspectConfig
}

// NewSQLite returns a SQLite inspector. The schema option names an attached
// database and defaults to main.
func NewSQLite(drv dialect.ExecQuerier, opts ...InspectOption) *SQLite {
	s := &SQLite{drv: drv, config: newInspectConfig(opts)}
	if s.config.schema == "" {
		s.config.schema = "main"
	}
	return s
}

// Columns returns the columns of table in ordinal order. Primary key
// columns are reported as not nullable.
func (s *SQLite) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	q := `SELECT name, type, "notnull", pk FROM pragma_table_info(?, ?) ORDER BY cid`
	var columns []ColumnInfo
	err := query(ctx, s.drv, dialect.SQLite, "query columns", q, []any{table, s.config.schema}, func(rows sql.ColumnScanner) error {
		var (
			name, typ   string
			notNull, pk int
		)
		if err := rows.Scan(&name, &typ, &notNull, &pk); err != nil {
			return err
		}
		columns = append(columns, ColumnInfo{
			Name:     name,
			Table:    table,
			Schema:   s.config.schema,
			UDTName:  strings.TrimSpace(typ),
			Nullable: notNull == 0 && pk == 0,
		})
		return nil
	})
	return columns, err
}

// Tables returns the tables and views of the database, reporting view-ness.
func (s *SQLite) Tables(ctx context.Context) ([]TableInfo, error) {
	q := `SELECT name, type FROM sqlite_master WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name`
	if s.config.schema != "main" {
		q = `SELECT name, type FROM ` + sql.SQLite.Ident(s.config.schema) + `.sqlite_master WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name`
	}
	var tables []TableInfo
	err := query(ctx, s.drv, dialect.SQLite, "query tables", q, []any{}, func(rows sql.ColumnScanner) error {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return err
		}
		tables = append(tables, TableInfo{Name: name, IsView: typ == "view"})
		return nil
	})
	return tables, err
}
