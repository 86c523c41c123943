// Package sql provides the SQL dialects of the generator: Postgres, MySQL
// and SQLite.
//
// A dialect supplies the type vocabulary of its catalog and the way
// generated inserts return identifiers. Everything else is shared by
// package gen.
//
// Usage:
//
//	drv, err := sql.Open("postgres", dsn) // github.com/syssam/dbgen/dialect/sql
//	if err != nil {
//	    return err
//	}
//	g, err := gensql.NewGenerator(drv, gen.WithTarget("./models"))
//	if err != nil {
//	    return err
//	}
//	return g.GenerateFiles(ctx, "users", "orders")
package sql
