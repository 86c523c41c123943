package gen

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dbgen/dialect/sql/schema"
)

// fakeInspector serves a fixed catalog.
type fakeInspector struct {
	columns map[string][]ColumnInfo
	tables  []schema.TableInfo
	err     error
}

func (f *fakeInspector) Columns(_ context.Context, table string) ([]ColumnInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.columns[table], nil
}

func (f *fakeInspector) Tables(context.Context) ([]schema.TableInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tables, nil
}

// testDialect is a Postgres-like dialect returning identifiers with RETURNING.
type testDialect struct {
	BaseDialect
}

var testVocabulary = &Vocabulary{
	Types: map[string]string{
		"BOOL":        "bool",
		"INT2":        "int16",
		"INT4":        "int32",
		"INT8":        "int64",
		"BIGINT":      "int64",
		"OID":         "uint32",
		"FLOAT8":      "float64",
		"TEXT":        TypeString,
		"VARCHAR":     TypeString,
		"BYTEA":       "[]byte",
		"TIMESTAMPTZ": "time.Time",
		"UUID":        "uuid.UUID",
		"NUMERIC":     TypeDecimal,
		"JSONB":       "json.RawMessage",
	},
	NullSuppressed:  []string{"JSONB"},
	ArrayPrefix:     "_",
	CharTypes:       []string{"VARCHAR", "CHARACTER VARYING"},
	NumericPrefixes: []string{"NUMERIC", "DECIMAL"},
}

func (testDialect) Name() string            { return "postgres" }
func (testDialect) Vocabulary() *Vocabulary { return testVocabulary }
func (testDialect) Runtime() jen.Code       { return jen.Qual(RuntimePkg, "Postgres") }

func newTestGenerator(t *testing.T, insp *fakeInspector, opts ...Option) *Generator {
	t.Helper()
	g, err := NewGenerator(insp, testDialect{}, opts...)
	require.NoError(t, err)
	return g
}

func col(name, udt string, nullable bool) ColumnInfo {
	return ColumnInfo{Name: name, Table: "users", Schema: "public", UDTName: udt, Nullable: nullable}
}

// userColumns are the columns of a typical users table.
func userColumns() []ColumnInfo {
	return []ColumnInfo{
		col("id", "int8", false),
		col("name", "text", true),
	}
}

func testTable(t *testing.T, name string, columns []ColumnInfo) *Table {
	t.Helper()
	tbl, err := NewTable(NewTypeMapper(testVocabulary), FieldNamingPascal, name, columns, nil)
	require.NoError(t, err)
	return tbl
}

// render renders code as Go source text.
func render(codes ...jen.Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = fmt.Sprintf("%#v", c)
	}
	return strings.Join(parts, "\n")
}

// squash collapses whitespace runs so assertions do not depend on gofmt
// alignment.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
