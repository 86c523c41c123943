// Package sql provides the SQL driver used for catalog introspection and the
// small runtime that generated code builds its statements with.
//
// Generated code renders each value to text (Int, Float, String, Stringer,
// Dialect.Time, Array, ...), quotes it with Dialect.Quote and appends it to an
// InsertBuilder. Binary values are complete literals from Dialect.Blob:
//
//	d := sql.Postgres
//	b := d.InsertInto("users")
//	b.Field("name")
//	b.Values(d.Quote(sql.String(obj.Name)))
//	b.Returning("id")
//	query, err := b.SQL()
//
// Rows are read back with QueryAll/QueryOne and the ScanArray helpers.
// Constraint violations raised by generated statements can be told apart
// with Constraint and the IsXxxConstraintError helpers:
//
//	if _, err := models.InsertUser(ctx, db, u); sql.IsUniqueConstraintError(err) {
//		// duplicate
//	}
package sql
