package schema

import (
	"context"
	"strings"

	"github.com/syssam/dbgen/dialect"
	"github.com/syssam/dbgen/dialect/sql"
)

// MySQL reads INFORMATION_SCHEMA on MySQL and MariaDB. DATA_TYPE does not
// carry signedness, so unsigned integer columns are reported with an
// " unsigned" suffix taken from COLUMN_TYPE.
type MySQL struct {
	drv    dialect.ExecQuerier
	config inspectConfig
}

// NewMySQL returns a MySQL inspector.
func NewMySQL(drv dialect.ExecQuerier, opts ...InspectOption) *MySQL {
	return &MySQL{drv: drv, config: newInspectConfig(opts)}
}

// Columns returns the columns of table in ordinal order.
func (m *MySQL) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	q := "SELECT `COLUMN_NAME`, `TABLE_NAME`, `TABLE_SCHEMA`, `DATA_TYPE`, `COLUMN_TYPE`, `IS_NULLABLE` FROM `INFORMATION_SCHEMA`.`COLUMNS` WHERE `TABLE_SCHEMA` = (SELECT DATABASE()) AND `TABLE_NAME` = ? ORDER BY `ORDINAL_POSITION`"
	args := []any{table}
	if m.config.schema != "" {
		q = "SELECT `COLUMN_NAME`, `TABLE_NAME`, `TABLE_SCHEMA`, `DATA_TYPE`, `COLUMN_TYPE`, `IS_NULLABLE` FROM `INFORMATION_SCHEMA`.`COLUMNS` WHERE `TABLE_SCHEMA` = ? AND `TABLE_NAME` = ? ORDER BY `ORDINAL_POSITION`"
		args = []any{m.config.schema, table}
	}
	var columns []ColumnInfo
	err := query(ctx, m.drv, dialect.MySQL, "query columns", q, args, func(rows sql.ColumnScanner) error {
		var (
			c                 ColumnInfo
			colType, nullable string
		)
		if err := rows.Scan(&c.Name, &c.Table, &c.Schema, &c.UDTName, &colType, &nullable); err != nil {
			return err
		}
		if strings.Contains(strings.ToLower(colType), "unsigned") {
			c.UDTName += " unsigned"
		}
		c.Nullable = nullable == "YES"
		columns = append(columns, c)
		return nil
	})
	return columns, err
}

// Tables returns the tables and views of the database. MySQL inspection
// does not report view-ness: IsView is always false.
func (m *MySQL) Tables(ctx context.Context) ([]TableInfo, error) {
	q := "SELECT `TABLE_NAME` FROM `INFORMATION_SCHEMA`.`TABLES` WHERE `TABLE_SCHEMA` = (SELECT DATABASE()) ORDER BY `TABLE_NAME`"
	args := []any{}
	if m.config.schema != "" {
		q = "SELECT `TABLE_NAME` FROM `INFORMATION_SCHEMA`.`TABLES` WHERE `TABLE_SCHEMA` = ? ORDER BY `TABLE_NAME`"
		args = []any{m.config.schema}
	}
	var tables []TableInfo
	err := query(ctx, m.drv, dialect.MySQL, "query tables", q, args, func(rows sql.ColumnScanner) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, TableInfo{Name: name})
		return nil
	})
	return tables, err
}
