package gen

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbgen"
)

// stringer is a text rendering function of the runtime package.
type stringer struct {
	name string
	// method stringers are dialect methods (d.Time), the others are
	// package functions (sql.Int).
	method bool
	// generic stringers need explicit type arguments when used as values.
	generic bool
	// field is the struct field holding the value of wrapper types such as
	// sql.NullString. It is read regardless of Valid.
	field string
	// literal names the dialect method rendering a complete SQL literal,
	// used instead of quoting the text.
	literal string
}

// call renders a call of the stringer on v.
func (s stringer) call(v jen.Code) jen.Code {
	if s.field != "" {
		v = jen.Add(v).Dot(s.field)
	}
	if s.method {
		return jen.Id("d").Dot(s.name).Call(v)
	}
	return jen.Qual(RuntimePkg, s.name).Call(v)
}

// value renders the stringer as a function value for elements of type typ.
func (s stringer) value(typ string) jen.Code {
	switch {
	case s.field != "":
		return jen.Func().Params(jen.Id("v").Add(typeCode(typ))).String().Block(jen.Return(s.call(jen.Id("v"))))
	case s.method:
		return jen.Id("d").Dot(s.name)
	case s.generic:
		return jen.Qual(RuntimePkg, s.name).Types(typeCode(typ))
	default:
		return jen.Qual(RuntimePkg, s.name)
	}
}

// stringers maps base Go types to their rendering. Types missing here and
// from the configured stringers cannot be embedded in statements.
var stringers = map[string]stringer{
	"string":          {name: "String"},
	"bool":            {name: "Bool"},
	"int":             {name: "Int", generic: true},
	"int8":            {name: "Int", generic: true},
	"int16":           {name: "Int", generic: true},
	"int32":           {name: "Int", generic: true},
	"int64":           {name: "Int", generic: true},
	"uint":            {name: "Uint", generic: true},
	"uint8":           {name: "Uint", generic: true},
	"uint16":          {name: "Uint", generic: true},
	"uint32":          {name: "Uint", generic: true},
	"uint64":          {name: "Uint", generic: true},
	"float32":         {name: "Float", generic: true},
	"float64":         {name: "Float", generic: true},
	"[]byte":          {name: "Bytes", method: true, literal: "Blob"},
	"time.Time":       {name: "Time", method: true},
	"json.RawMessage": {name: "JSON"},
	"uuid.UUID":       {name: "Stringer", generic: true},
	"decimal.Decimal": {name: "Stringer", generic: true},
	"netip.Addr":      {name: "Stringer", generic: true},
	"sql.NullString":  {name: "String", field: "String"},
	"sql.NullInt64":   {name: "Int", field: "Int64"},
	"sql.NullBool":    {name: "Bool", field: "Bool"},
	"sql.NullFloat64": {name: "Float", field: "Float64"},
	"sql.NullTime":    {name: "Time", method: true, field: "Time"},
}

// emitter renders the statement sections of a table.
type emitter struct {
	dialect Dialect
	// custom maps type expressions to qualified rendering functions.
	custom map[string]string
}

// stringify renders v, a value of type base, to text.
func (e *emitter) stringify(t *Table, f *Field, base string, v jen.Code) (jen.Code, error) {
	if fn, ok := e.custom[base]; ok {
		return funcCode(fn).Call(v), nil
	}
	if s, ok := stringers[base]; ok {
		return s.call(v), nil
	}
	if elem, ok := strings.CutPrefix(base, "[]"); ok {
		ef, err := e.stringerValue(t, f, elem)
		if err != nil {
			return nil, err
		}
		return jen.Qual(RuntimePkg, "Array").Call(v, ef), nil
	}
	return nil, dbgen.NewNoStringerError(base, t.Name, f.Column.Name)
}

func (e *emitter) stringerValue(t *Table, f *Field, typ string) (jen.Code, error) {
	if fn, ok := e.custom[typ]; ok {
		return funcCode(fn), nil
	}
	if s, ok := stringers[typ]; ok {
		return s.value(typ), nil
	}
	return nil, dbgen.NewNoStringerError(typ, t.Name, f.Column.Name)
}

// quoted renders the SQL literal of obj's field. Pointer fields are
// dereferenced unconditionally. Wrapper fields are read through their value
// field, which dereferences implicitly.
func (e *emitter) quoted(t *Table, f *Field, obj string) (jen.Code, error) {
	base := f.BaseType()
	v := jen.Id(obj).Dot(f.Name)
	if f.Pointer() && stringers[base].field == "" {
		v = jen.Op("*").Add(v)
	}
	return e.literal(t, f, base, v)
}

// literal renders v, a value of type base, as a complete SQL literal.
func (e *emitter) literal(t *Table, f *Field, base string, v jen.Code) (jen.Code, error) {
	if _, ok := e.custom[base]; !ok {
		if s, ok := stringers[base]; ok && s.literal != "" {
			return jen.Id("d").Dot(s.literal).Call(v), nil
		}
	}
	s, err := e.stringify(t, f, base, v)
	if err != nil {
		return nil, err
	}
	return jen.Id("d").Dot("Quote").Call(s), nil
}

// values renders the b.Values call for one record.
func (e *emitter) values(t *Table, fields []*Field, obj string) (jen.Code, error) {
	vs := make([]jen.Code, 0, len(fields))
	for _, f := range fields {
		v, err := e.quoted(t, f, obj)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return jen.Id("b").Dot("Values").CallFunc(func(g *jen.Group) {
		for _, v := range vs {
			g.Add(v)
		}
	}), nil
}

// ctxParams are the leading parameters of every generated function.
func ctxParams() []jen.Code {
	return []jen.Code{
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(RuntimePkg, "ExecQuerier"),
	}
}

const nullableNote = "Nullable fields are dereferenced without a nil check: callers must set every nullable field."

// genInsert emits a single-record insert. The returning variant omits the
// identifier column and returns the generated identifier.
func (e *emitter) genInsert(t *Table, returning bool) ([]jen.Code, error) {
	if returning && t.ID() == nil {
		return nil, nil
	}
	fields := t.InsertFields(returning)
	values, err := e.values(t, fields, "obj")
	if err != nil {
		return nil, err
	}
	name := "Insert" + t.StructName
	s := jen.Null()
	if returning {
		name += "ReturningID"
		s.Commentf("%s inserts obj into the %s table and returns its generated %s.", name, t.Name, IDColumn).Line()
	} else {
		s.Commentf("%s inserts obj into the %s table.", name, t.Name).Line()
	}
	s.Comment(nullableNote).Line()
	params := append(ctxParams(), jen.Id("obj").Op("*").Id(t.StructName))
	s.Func().Id(name).Params(params...)
	if returning {
		s.Params(jen.Id("id").Add(typeCode(e.dialect.IDType(t))), jen.Err().Error())
	} else {
		s.Params(jen.Qual(RuntimePkg, "Result"), jen.Error())
	}
	s.BlockFunc(func(g *jen.Group) {
		e.builder(g, t, fields)
		g.Add(values)
		e.finalize(g, t, returning, false)
	})
	return []jen.Code{s}, nil
}

// genBatchInsert emits a multi-record insert: one builder and field list,
// and one b.Values call per record inside a loop.
func (e *emitter) genBatchInsert(t *Table, returning bool) ([]jen.Code, error) {
	if returning && t.ID() == nil {
		return nil, nil
	}
	fields := t.InsertFields(returning)
	values, err := e.values(t, fields, "obj")
	if err != nil {
		return nil, err
	}
	name := "BatchInsert" + t.StructName
	s := jen.Null()
	if returning {
		name += "ReturningIDs"
		s.Commentf("%s inserts objs into the %s table with a single statement and returns their generated %ss.", name, t.Name, IDColumn).Line()
	} else {
		s.Commentf("%s inserts objs into the %s table with a single statement.", name, t.Name).Line()
	}
	s.Comment(nullableNote).Line()
	params := append(ctxParams(), jen.Id("objs").Index().Op("*").Id(t.StructName))
	s.Func().Id(name).Params(params...)
	if returning {
		s.Params(jen.Id("ids").Index().Add(typeCode(e.dialect.IDType(t))), jen.Err().Error())
	} else {
		s.Params(jen.Qual(RuntimePkg, "Result"), jen.Error())
	}
	s.BlockFunc(func(g *jen.Group) {
		e.builder(g, t, fields)
		g.For(jen.List(jen.Id("_"), jen.Id("obj")).Op(":=").Range().Id("objs")).Block(values)
		e.finalize(g, t, returning, true)
	})
	return []jen.Code{s}, nil
}

// builder emits the dialect value, the builder and its field list.
func (e *emitter) builder(g *jen.Group, t *Table, fields []*Field) {
	g.Id("d").Op(":=").Add(e.dialect.Runtime())
	g.Id("b").Op(":=").Id("d").Dot("InsertInto").Call(jen.Lit(t.Name))
	for _, f := range fields {
		g.Id("b").Dot("Field").Call(jen.Lit(f.Column.Name))
	}
}

// finalize emits the statement execution. Returning variants let the dialect
// request the identifier before b.SQL and read it back afterwards.
func (e *emitter) finalize(g *jen.Group, t *Table, returning, batch bool) {
	if returning {
		e.dialect.Returning(g, t)
	}
	g.List(jen.Id("query"), jen.Err()).Op(":=").Id("b").Dot("SQL").Call()
	switch {
	case returning && batch:
		g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Id("ids"), jen.Err()))
		e.dialect.ReturnIDs(g, t)
	case returning:
		g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Id("id"), jen.Err()))
		e.dialect.ReturnID(g, t)
	default:
		g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err()))
		g.Return(jen.Id("db").Dot("ExecContext").Call(jen.Id("ctx"), jen.Id("query")))
	}
}

// selectQueryName is the constant holding the select-all statement.
func selectQueryName(t *Table) string {
	return "Select" + t.StructName + "Query"
}

// SelectSQL returns the select-all statement of a table.
func SelectSQL(t *Table) string {
	return "select " + strings.Join(t.ColumnNames(), ", ") + " from " + t.Name
}

// DeleteByIDSQL returns the delete statement of a table up to the quoted
// identifier.
func DeleteByIDSQL(t *Table) string {
	return "delete from " + t.Name + " where " + IDColumn + "="
}

// genSelect emits the select-all statement, the list function and the scan
// destinations of the record.
func (e *emitter) genSelect(t *Table) ([]jen.Code, error) {
	query := selectQueryName(t)
	list := "Select" + plural(t.StructName)
	return []jen.Code{
		jen.Commentf("%s selects every column of the %s table.", query, t.Name).Line().
			Const().Id(query).Op("=").Lit(SelectSQL(t)),
		jen.Commentf("%s returns every row of the %s table.", list, t.Name).Line().
			Func().Id(list).Params(ctxParams()...).Params(jen.Index().Op("*").Id(t.StructName), jen.Error()).Block(
			jen.Return(jen.Qual(RuntimePkg, "QueryAll").Call(
				jen.Id("ctx"), jen.Id("db"), jen.Id(query), jen.Parens(jen.Op("*").Id(t.StructName)).Dot("scanValues"),
			)),
		),
		jen.Comment("scanValues returns the scan destinations of obj in column order.").Line().
			Func().Params(jen.Id("obj").Op("*").Id(t.StructName)).Id("scanValues").Params().Index().Any().Block(
			jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
				for _, f := range t.Fields {
					g.Add(scanDest(f))
				}
			})),
		),
	}, nil
}

// scanDest renders the scan destination of a field. JSON and array fields go
// through the runtime scanners.
func scanDest(f *Field) jen.Code {
	ref := jen.Op("&").Id("obj").Dot(f.Name)
	base := f.BaseType()
	if base == "json.RawMessage" {
		if f.Pointer() {
			return jen.Qual(RuntimePkg, "ScanNullJSON").Call(ref)
		}
		return jen.Qual(RuntimePkg, "ScanJSON").Call(ref)
	}
	if !strings.HasPrefix(base, "[]") || base == "[]byte" {
		return ref
	}
	if f.Pointer() {
		return jen.Qual(RuntimePkg, "ScanNullArray").Call(ref)
	}
	return jen.Qual(RuntimePkg, "ScanArray").Call(ref)
}

// quotedID renders the SQL literal of the "id" parameter.
func (e *emitter) quotedID(t *Table) (jen.Code, error) {
	id := t.ID()
	return e.literal(t, id, id.BaseType(), jen.Id("id"))
}

// genSelectByID emits the select-all statement restricted to one identifier.
func (e *emitter) genSelectByID(t *Table) ([]jen.Code, error) {
	id := t.ID()
	if id == nil {
		return nil, nil
	}
	quoted, err := e.quotedID(t)
	if err != nil {
		return nil, err
	}
	name := "Select" + t.StructName + "ByID"
	return []jen.Code{
		jen.Commentf("%s returns the row of the %s table with the given %s, or sql.ErrNoRows.", name, t.Name, IDColumn).Line().
			Func().Id(name).Params(append(ctxParams(), jen.Id("id").Add(typeCode(id.BaseType())))...).
			Params(jen.Op("*").Id(t.StructName), jen.Error()).Block(
			jen.Id("d").Op(":=").Add(e.dialect.Runtime()),
			jen.Return(jen.Qual(RuntimePkg, "QueryOne").Call(
				jen.Id("ctx"), jen.Id("db"), jen.Id(selectQueryName(t)).Op("+").Lit(" where "+IDColumn+"=").Op("+").Add(quoted),
				jen.Parens(jen.Op("*").Id(t.StructName)).Dot("scanValues"),
			)),
		),
	}, nil
}

// genDeleteByID emits the delete statement for one identifier.
func (e *emitter) genDeleteByID(t *Table) ([]jen.Code, error) {
	id := t.ID()
	if id == nil {
		return nil, nil
	}
	quoted, err := e.quotedID(t)
	if err != nil {
		return nil, err
	}
	name := "Delete" + t.StructName + "ByID"
	return []jen.Code{
		jen.Commentf("%s deletes the row of the %s table with the given %s.", name, t.Name, IDColumn).Line().
			Func().Id(name).Params(append(ctxParams(), jen.Id("id").Add(typeCode(id.BaseType())))...).
			Params(jen.Qual(RuntimePkg, "Result"), jen.Error()).Block(
			jen.Id("d").Op(":=").Add(e.dialect.Runtime()),
			jen.Return(jen.Id("db").Dot("ExecContext").Call(
				jen.Id("ctx"), jen.Lit(DeleteByIDSQL(t)).Op("+").Add(quoted),
			)),
		),
	}, nil
}
