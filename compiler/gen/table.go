package gen

import (
	"errors"
	"strings"

	"github.com/syssam/dbgen"
	"github.com/syssam/dbgen/dialect/sql/schema"
)

// IDColumn is the column treated as the server-generated identifier. The
// match is by name only.
const IDColumn = "id"

// Table is a table with its columns resolved to Go fields, in catalog order.
type Table struct {
	Name       string
	StructName string
	Columns    []schema.ColumnInfo
	Fields     []*Field
	// UserTypes holds every column type resolved through the override table,
	// keyed by raw type name.
	UserTypes map[string]UserType
}

// Field is a struct field generated for a column.
type Field struct {
	Column schema.ColumnInfo
	// Name is the Go field symbol, escaped when it is a Go keyword.
	Name string
	// Type is the resolved Go type expression.
	Type string
}

// UserType records a raw type that was resolved through an override.
type UserType struct {
	Name string
	Expr string
}

// Pointer reports whether the field type is pointer-wrapped. Values of such
// fields are dereferenced without a nil check in statements.
func (f *Field) Pointer() bool {
	return strings.HasPrefix(f.Type, "*")
}

// BaseType returns the field type without its pointer wrapping.
func (f *Field) BaseType() string {
	return strings.TrimPrefix(f.Type, "*")
}

// IsID reports whether the field is the identifier column.
func (f *Field) IsID() bool {
	return f.Column.Name == IDColumn
}

// ID returns the identifier field, or nil when the table has none.
func (t *Table) ID() *Field {
	for _, f := range t.Fields {
		if f.IsID() {
			return f
		}
	}
	return nil
}

// InsertFields returns the fields written by an insert statement. The
// identifier is left to the database in returning-identifier variants.
func (t *Table) InsertFields(returning bool) []*Field {
	if !returning {
		return t.Fields
	}
	fields := make([]*Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if !f.IsID() {
			fields = append(fields, f)
		}
	}
	return fields
}

// ColumnNames returns the raw column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NewTable resolves the columns of a table. Field order equals column order;
// nothing is sorted, filtered or deduplicated. Unsupported types fail with an
// *dbgen.UnsupportedTypeError naming the column.
func NewTable(m *TypeMapper, naming FieldNaming, name string, columns []schema.ColumnInfo, overrides Overrides) (*Table, error) {
	t := &Table{
		Name:       name,
		StructName: StructName(name),
		Columns:    columns,
		Fields:     make([]*Field, 0, len(columns)),
		UserTypes:  make(map[string]UserType),
	}
	for _, c := range columns {
		r, err := m.resolve(c.UDTName, c.Nullable, overrides)
		if err != nil {
			var ue *dbgen.UnsupportedTypeError
			if errors.As(err, &ue) {
				ue.Column, ue.Table = c.Name, name
			}
			return nil, err
		}
		if r.overridden {
			t.UserTypes[c.UDTName] = UserType{Name: c.UDTName, Expr: r.expr}
		}
		t.Fields = append(t.Fields, &Field{
			Column: c,
			Name:   naming.FieldName(c.Name),
			Type:   r.expr,
		})
	}
	return t, nil
}
