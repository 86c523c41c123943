// Package gen generates Go data access code from database catalogs.
//
// For every table the generator emits one Go file holding a record type and
// the functions reading and writing it:
//
//	type User struct { ... }
//	func InsertUserReturningID(ctx, db, obj) (id, err)
//	func InsertUser(ctx, db, obj) (sql.Result, error)
//	func BatchInsertUserReturningIDs(ctx, db, objs) (ids, err)
//	func BatchInsertUser(ctx, db, objs) (sql.Result, error)
//	const SelectUserQuery = "select ... from users"
//	func SelectUsers(ctx, db) ([]*User, error)
//	func SelectUserByID(ctx, db, id) (*User, error)
//	func DeleteUserByID(ctx, db, id) (sql.Result, error)
//
// Generated code builds statements with github.com/syssam/dbgen/dialect/sql.
// Values are embedded as quoted text, not bound as parameters.
//
// # Pipeline
//
//	Inspector (dialect/sql/schema)
//	        ↓  []ColumnInfo in ordinal order
//	   TypeMapper + Overrides
//	        ↓  Table with Go fields
//	   struct and statement sections
//	        ↓  jennifer file
//	   WriteSource (goimports)
//
// # Type Resolution
//
// Raw catalog types resolve through the dialect Vocabulary, in this order:
// null-suppressed types, arrays, character types with a length, numeric
// families, nullable-specific overrides (KEY?), overrides and built-in types.
// Nullable columns become pointers. Unknown types fail with an
// *dbgen.UnsupportedTypeError; no file is produced.
//
// # Identifiers
//
// Only the column named "id" is treated as the generated identifier.
// Returning variants leave it out of the inserted columns; tables without
// an id column get neither returning variants nor the by-id functions.
//
// # Nullable Values
//
// Generated inserts dereference pointer fields without a nil check. Callers
// must set every nullable field before inserting. sql.Null* overrides are
// read through their value field whatever Valid holds.
//
// # Entry Points
//
// GenerateModule returns the source of a table and fails with a
// *dbgen.TableNotFoundError when the table has no columns. GenerateFile
// writes <target>/FileName(table) and only logs a warning for such tables.
// The two behaviors differ on purpose and are kept as they are.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	g, err := sql.NewGenerator(drv,
//	    gen.WithTarget("./models"),
//	    gen.WithMarkers("yaml"),
//	    gen.WithOverrides(map[string]string{"mood": "github.com/acme/types.Mood"}),
//	    gen.WithStringer("github.com/acme/types.Mood", "github.com/acme/types.FormatMood"),
//	)
//
// or from a YAML file with LoadConfig.
package gen
