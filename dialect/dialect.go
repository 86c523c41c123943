package dialect

import "context"

// Dialect names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier wraps the Exec and Query operations of a database connection.
type ExecQuerier interface {
	// Exec executes a statement. v is nil or a *sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query and stores the rows in v, a *sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for reading
// a database catalog.
type Driver interface {
	ExecQuerier
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Supported reports whether name is a dialect dbgen can generate for.
func Supported(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres:
		return true
	}
	return false
}
