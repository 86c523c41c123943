// Package dialect defines the database dialects dbgen understands and the
// narrow driver interface the catalog inspectors query through.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
//	type Driver interface {
//	    ExecQuerier
//	    Close() error
//	    Dialect() string
//	}
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Usage
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// # Sub-packages
//
//   - dialect/sql: driver implementation and the runtime used by generated code
//   - dialect/sql/schema: catalog introspection
package dialect
