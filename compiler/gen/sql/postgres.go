package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbgen/compiler/gen"
	"github.com/syssam/dbgen/dialect"
)

// Postgres is the Postgres dialect. Identifiers are returned with
// RETURNING id.
type Postgres struct {
	gen.BaseDialect
}

var postgresVocabulary = &gen.Vocabulary{
	Types: map[string]string{
		"BOOL":    "bool",
		"BOOLEAN": "bool",

		"INT2":        "int16",
		"SMALLINT":    "int16",
		"SMALLSERIAL": "int16",
		"INT":         "int32",
		"INT4":        "int32",
		"INTEGER":     "int32",
		"SERIAL":      "int32",
		"SERIAL4":     "int32",
		"INT8":        "int64",
		"BIGINT":      "int64",
		"BIGSERIAL":   "int64",
		"SERIAL8":     "int64",
		"OID":         "uint32",

		"FLOAT4":           "float32",
		"REAL":             "float32",
		"FLOAT8":           "float64",
		"DOUBLE PRECISION": "float64",

		"TEXT":              gen.TypeString,
		"NAME":              gen.TypeString,
		"CITEXT":            gen.TypeString,
		"CHAR":              gen.TypeString,
		"BPCHAR":            gen.TypeString,
		"CHARACTER":         gen.TypeString,
		"VARCHAR":           gen.TypeString,
		"CHARACTER VARYING": gen.TypeString,
		"INTERVAL":          gen.TypeString,
		"TIME":              gen.TypeString,
		"TIMETZ":            gen.TypeString,
		"INET":              gen.TypeString,
		"CIDR":              gen.TypeString,
		"MACADDR":           gen.TypeString,

		"BYTEA": "[]byte",

		"DATE":                        "time.Time",
		"TIMESTAMP":                   "time.Time",
		"TIMESTAMPTZ":                 "time.Time",
		"TIMESTAMP WITHOUT TIME ZONE": "time.Time",
		"TIMESTAMP WITH TIME ZONE":    "time.Time",

		"UUID":    "uuid.UUID",
		"NUMERIC": gen.TypeDecimal,
		"DECIMAL": gen.TypeDecimal,
		"MONEY":   gen.TypeString,
		"JSON":    "json.RawMessage",
		"JSONB":   "json.RawMessage",
	},
	NullSuppressed:  []string{"JSON", "JSONB"},
	ArrayPrefix:     "_",
	CharTypes:       []string{"CHAR", "BPCHAR", "CHARACTER", "VARCHAR", "CHARACTER VARYING"},
	NumericPrefixes: []string{"NUMERIC", "DECIMAL"},
}

// Name returns "postgres".
func (Postgres) Name() string { return dialect.Postgres }

// Vocabulary returns the Postgres type table, keyed by udt_name and by the
// SQL standard spellings.
func (Postgres) Vocabulary() *gen.Vocabulary { return postgresVocabulary }

// Runtime returns sql.Postgres.
func (Postgres) Runtime() jen.Code { return jen.Qual(gen.RuntimePkg, "Postgres") }
