package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// baseMarkers are the struct tag keys every generated field carries.
var baseMarkers = []string{"db", "json"}

// genStruct emits the record declaration of a table. Each field is tagged
// with the raw column name under the base markers and the extra markers.
// Annotations are emitted one per line right above the type keyword; lines
// starting with "//" are kept verbatim, anything else becomes a comment.
func genStruct(t *Table, markers, annotations []string) jen.Code {
	s := jen.Commentf("%s is a record of the %s table.", t.StructName, t.Name).Line()
	for _, a := range annotations {
		s.Comment(a).Line()
	}
	s.Type().Id(t.StructName).StructFunc(func(g *jen.Group) {
		for _, f := range t.Fields {
			g.Id(f.Name).Add(typeCode(f.Type)).Tag(fieldTags(f, markers))
		}
	})
	return s
}

func fieldTags(f *Field, markers []string) map[string]string {
	tags := make(map[string]string, len(baseMarkers)+len(markers))
	for _, m := range baseMarkers {
		tags[m] = f.Column.Name
	}
	for _, m := range markers {
		tags[m] = f.Column.Name
	}
	return tags
}

// Synthesize renders the record declaration of a table as Go source text.
func (g *Generator) Synthesize(table string, columns []ColumnInfo, markers, annotations []string, overrides Overrides) (string, error) {
	t, err := NewTable(g.mapper, g.config.FieldNaming, table, columns, overrides)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%#v", genStruct(t, markers, annotations)), nil
}
