// Package schema reads table and column metadata from a database catalog.
package schema

import (
	"context"
	"fmt"

	"github.com/syssam/dbgen"
	"github.com/syssam/dbgen/dialect"
	"github.com/syssam/dbgen/dialect/sql"
)

// ColumnInfo describes one catalog column. UDTName is the raw dialect type
// token the type mapper resolves.
type ColumnInfo struct {
	Name     string
	Table    string
	Schema   string
	UDTName  string
	Nullable bool
}

// TableInfo describes one catalog relation.
type TableInfo struct {
	Name   string
	IsView bool
}

// Inspector reads catalog metadata. Columns are returned in ordinal
// position order; an unknown table yields an empty slice, not an error.
type Inspector interface {
	Columns(ctx context.Context, table string) ([]ColumnInfo, error)
	Tables(ctx context.Context) ([]TableInfo, error)
}

// InspectOption configures an inspector.
type InspectOption func(*inspectConfig)

type inspectConfig struct {
	schema string
}

// WithSchema scopes introspection to the named schema (or database on
// MySQL) instead of the connection's current one.
func WithSchema(name string) InspectOption {
	return func(c *inspectConfig) {
		c.schema = name
	}
}

// NewInspector returns the inspector for the driver's dialect.
func NewInspector(drv dialect.Driver, opts ...InspectOption) (Inspector, error) {
	switch drv.Dialect() {
	case dialect.Postgres:
		return NewPostgres(drv, opts...), nil
	case dialect.MySQL:
		return NewMySQL(drv, opts...), nil
	case dialect.SQLite:
		return NewSQLite(drv, opts...), nil
	default:
		return nil, fmt.Errorf("dialect/sql/schema: unsupported dialect %q", drv.Dialect())
	}
}

func newInspectConfig(opts []InspectOption) inspectConfig {
	var c inspectConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// query runs a catalog query and hands every row to scan. Driver failures
// are reported as connection errors.
func query(ctx context.Context, drv dialect.ExecQuerier, name, op, q string, args []any, scan func(sql.ColumnScanner) error) error {
	rows := &sql.Rows{}
	if err := drv.Query(ctx, q, args, rows); err != nil {
		return dbgen.NewConnectionError(name, op, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return dbgen.NewConnectionError(name, op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return dbgen.NewConnectionError(name, op, err)
	}
	return nil
}
