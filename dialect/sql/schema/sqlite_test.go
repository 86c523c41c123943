package schema

import (
	"context"
	stdsql "database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/dbgen/dialect"
	"github.com/syssam/dbgen/dialect/sql"
)

func openSQLite(t *testing.T) *sql.Driver {
	t.Helper()
	db, err := stdsql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, name VARCHAR(20) NOT NULL, bio TEXT, "type" TEXT);
		CREATE VIEW named_users AS SELECT id, name FROM users WHERE name <> '';
	`)
	require.NoError(t, err)
	return sql.OpenDB(dialect.SQLite, db)
}

func TestSQLiteColumns(t *testing.T) {
	drv := openSQLite(t)
	columns, err := NewSQLite(drv).Columns(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{
		{Name: "id", Table: "users", Schema: "main", UDTName: "INTEGER"},
		{Name: "name", Table: "users", Schema: "main", UDTName: "VARCHAR(20)"},
		{Name: "bio", Table: "users", Schema: "main", UDTName: "TEXT", Nullable: true},
		{Name: "type", Table: "users", Schema: "main", UDTName: "TEXT", Nullable: true},
	}, columns)

	columns, err = NewSQLite(drv).Columns(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestSQLiteTables(t *testing.T) {
	drv := openSQLite(t)
	tables, err := NewSQLite(drv).Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TableInfo{{Name: "named_users", IsView: true}, {Name: "users"}}, tables)
}
