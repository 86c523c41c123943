package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbgen/compiler/gen"
	"github.com/syssam/dbgen/dialect"
)

// MySQL is the MySQL dialect. MySQL has no RETURNING clause: generated
// inserts read LAST_INSERT_ID() instead, and batch inserts derive the
// identifiers of the following rows from the first one. This holds for
// auto-increment columns with innodb_autoinc_lock_mode 0 or 1, where a
// multi-row insert receives consecutive identifiers.
type MySQL struct{}

var mysqlVocabulary = &gen.Vocabulary{
	Types: map[string]string{
		"BOOL":    "bool",
		"BOOLEAN": "bool",

		"TINYINT":   "int8",
		"SMALLINT":  "int16",
		"MEDIUMINT": "int32",
		"INT":       "int32",
		"INTEGER":   "int32",
		"BIGINT":    "int64",
		"SERIAL":    "uint64",

		"TINYINT UNSIGNED":   "uint8",
		"SMALLINT UNSIGNED":  "uint16",
		"MEDIUMINT UNSIGNED": "uint32",
		"INT UNSIGNED":       "uint32",
		"INTEGER UNSIGNED":   "uint32",
		"BIGINT UNSIGNED":    "uint64",

		"FLOAT":  "float32",
		"DOUBLE": "float64",
		"REAL":   "float64",

		"CHAR":       gen.TypeString,
		"VARCHAR":    gen.TypeString,
		"TINYTEXT":   gen.TypeString,
		"TEXT":       gen.TypeString,
		"MEDIUMTEXT": gen.TypeString,
		"LONGTEXT":   gen.TypeString,
		"ENUM":       gen.TypeString,
		"SET":        gen.TypeString,
		"TIME":       gen.TypeString,
		"YEAR":       "int16",

		"BINARY":     "[]byte",
		"VARBINARY":  "[]byte",
		"TINYBLOB":   "[]byte",
		"BLOB":       "[]byte",
		"MEDIUMBLOB": "[]byte",
		"LONGBLOB":   "[]byte",
		"BIT":        "[]byte",

		"DATE":      "time.Time",
		"DATETIME":  "time.Time",
		"TIMESTAMP": "time.Time",

		"UUID":    "uuid.UUID",
		"DECIMAL": gen.TypeDecimal,
		"NUMERIC": gen.TypeDecimal,
		"JSON":    "json.RawMessage",
	},
	NullSuppressed:  []string{"JSON"},
	CharTypes:       []string{"CHAR", "VARCHAR"},
	NumericPrefixes: []string{"DECIMAL", "NUMERIC"},
}

// Name returns "mysql".
func (MySQL) Name() string { return dialect.MySQL }

// Vocabulary returns the MySQL type table, keyed by DATA_TYPE with an
// " UNSIGNED" suffix for unsigned integers.
func (MySQL) Vocabulary() *gen.Vocabulary { return mysqlVocabulary }

// Runtime returns sql.MySQL.
func (MySQL) Runtime() jen.Code { return jen.Qual(gen.RuntimePkg, "MySQL") }

// IDType returns int64, the type of LAST_INSERT_ID().
func (MySQL) IDType(*gen.Table) string { return "int64" }

// Returning emits nothing.
func (MySQL) Returning(*jen.Group, *gen.Table) {}

// ReturnID emits a read of LAST_INSERT_ID().
func (MySQL) ReturnID(g *jen.Group, _ *gen.Table) {
	g.Return(jen.Qual(gen.RuntimePkg, "LastInsertID").Call(jen.Id("ctx"), jen.Id("db"), jen.Id("query")))
}

// ReturnIDs emits the statement execution and the identifier range
// starting at LAST_INSERT_ID(), the identifier of the first inserted row.
func (MySQL) ReturnIDs(g *jen.Group, _ *gen.Table) {
	g.List(jen.Id("res"), jen.Err()).Op(":=").Id("db").Dot("ExecContext").Call(jen.Id("ctx"), jen.Id("query"))
	g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Id("ids"), jen.Err()))
	g.List(jen.Id("first"), jen.Err()).Op(":=").Id("res").Dot("LastInsertId").Call()
	g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Id("ids"), jen.Err()))
	g.Id("ids").Op("=").Make(jen.Index().Int64(), jen.Len(jen.Id("objs")))
	g.For(jen.Id("i").Op(":=").Range().Id("ids")).Block(
		jen.Id("ids").Index(jen.Id("i")).Op("=").Id("first").Op("+").Int64().Call(jen.Id("i")),
	)
	g.Return(jen.Id("ids"), jen.Nil())
}
