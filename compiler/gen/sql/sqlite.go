package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbgen/compiler/gen"
	"github.com/syssam/dbgen/dialect"
)

// SQLite is the SQLite dialect. Identifiers are returned with RETURNING id,
// available since SQLite 3.35.
type SQLite struct {
	gen.BaseDialect
}

var sqliteVocabulary = &gen.Vocabulary{
	Types: map[string]string{
		"INTEGER":  "int64",
		"INT":      "int64",
		"BIGINT":   "int64",
		"SMALLINT": "int16",
		"TINYINT":  "int8",

		"REAL":   "float64",
		"DOUBLE": "float64",
		"FLOAT":  "float64",

		"TEXT":    gen.TypeString,
		"CLOB":    gen.TypeString,
		"CHAR":    gen.TypeString,
		"VARCHAR": gen.TypeString,

		"BLOB": "[]byte",

		"BOOLEAN": "bool",
		"BOOL":    "bool",

		"DATE":      "time.Time",
		"DATETIME":  "time.Time",
		"TIMESTAMP": "time.Time",

		"UUID":    "uuid.UUID",
		"NUMERIC": gen.TypeDecimal,
		"DECIMAL": gen.TypeDecimal,
		"JSON":    "json.RawMessage",
	},
	NullSuppressed:  []string{"JSON"},
	CharTypes:       []string{"CHAR", "VARCHAR"},
	NumericPrefixes: []string{"NUMERIC", "DECIMAL"},
}

// Name returns "sqlite".
func (SQLite) Name() string { return dialect.SQLite }

// Vocabulary returns the SQLite type table, keyed by declared column types.
func (SQLite) Vocabulary() *gen.Vocabulary { return sqliteVocabulary }

// Runtime returns sql.SQLite.
func (SQLite) Runtime() jen.Code { return jen.Qual(gen.RuntimePkg, "SQLite") }
