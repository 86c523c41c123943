package schema

import (
	"context"

	"github.com/syssam/dbgen/dialect"
	"github.com/syssam/dbgen/dialect/sql"
)

// Postgres reads information_schema on PostgreSQL. Column types are the
// udt_name tokens (int4, _text, ...), arrays carrying a leading underscore.
type Postgres struct {
	drv    dialect.ExecQuerier
	config inspectConfig
}

// NewPostgres returns a Postgres inspector.
func NewPostgres(drv dialect.ExecQuerier, opts ...InspectOption) *Postgres {
	return &Postgres{drv: drv, config: newInspectConfig(opts)}
}

// Columns returns the columns of table in ordinal order.
func (p *Postgres) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	q := `SELECT column_name, table_name, table_schema, udt_name, is_nullable FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position`
	args := []any{table}
	if p.config.schema != "" {
		q = `SELECT column_name, table_name, table_schema, udt_name, is_nullable FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`
		args = []any{p.config.schema, table}
	}
	var columns []ColumnInfo
	err := query(ctx, p.drv, dialect.Postgres, "query columns", q, args, func(rows sql.ColumnScanner) error {
		var (
			c        ColumnInfo
			nullable string
		)
		if err := rows.Scan(&c.Name, &c.Table, &c.Schema, &c.UDTName, &nullable); err != nil {
			return err
		}
		c.Nullable = nullable == "YES"
		columns = append(columns, c)
		return nil
	})
	return columns, err
}

// Tables returns the tables and views of the schema, reporting view-ness.
func (p *Postgres) Tables(ctx context.Context) ([]TableInfo, error) {
	q := `SELECT table_name, table_type FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`
	args := []any{}
	if p.config.schema != "" {
		q = `SELECT table_name, table_type FROM information_schema.tables WHERE table_schema = $1 ORDER BY table_name`
		args = []any{p.config.schema}
	}
	var tables []TableInfo
	err := query(ctx, p.drv, dialect.Postgres, "query tables", q, args, func(rows sql.ColumnScanner) error {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return err
		}
		tables = append(tables, TableInfo{Name: name, IsView: typ == "VIEW"})
		return nil
	})
	return tables, err
}
