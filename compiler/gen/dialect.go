package gen

import "github.com/dave/jennifer/jen"

// Dialect is the per-database part of generation. Everything else, field
// order, value escaping, pointer handling and statement layout, is shared.
//
// A dialect only decides:
//
//   - the type vocabulary consumed by the TypeMapper
//   - how generated identifiers are returned from inserts
//   - the runtime dialect value generated code quotes with
//
// Embed BaseDialect to get the RETURNING-based defaults.
type Dialect interface {
	// Name returns the dialect name, e.g. "postgres".
	Name() string
	// Vocabulary returns the read-only type table of the dialect.
	Vocabulary() *Vocabulary
	// Runtime returns the dialect value of the runtime package,
	// e.g. sql.Postgres.
	Runtime() jen.Code
	// IDType returns the Go type of identifiers returned by inserts.
	IDType(t *Table) string
	// Returning emits the request for generated identifiers. It runs after
	// the values are appended and before the statement is finalized.
	Returning(g *jen.Group, t *Table)
	// ReturnID emits the tail of a single returning insert. The statement
	// text is in "query"; the result is named "id".
	ReturnID(g *jen.Group, t *Table)
	// ReturnIDs emits the tail of a batch returning insert over "objs".
	// The result is named "ids".
	ReturnIDs(g *jen.Group, t *Table)
}

// BaseDialect implements identifier return with a RETURNING clause whose
// rows are scanned back.
type BaseDialect struct{}

// IDType returns the type of the identifier field.
func (BaseDialect) IDType(t *Table) string {
	return t.ID().BaseType()
}

// Returning emits b.Returning("id").
func (BaseDialect) Returning(g *jen.Group, _ *Table) {
	g.Id("b").Dot("Returning").Call(jen.Lit(IDColumn))
}

// ReturnID emits a scan of the single returned identifier.
func (BaseDialect) ReturnID(g *jen.Group, t *Table) {
	g.Return(jen.Qual(RuntimePkg, "QueryID").Types(typeCode(t.ID().BaseType())).Call(
		jen.Id("ctx"), jen.Id("db"), jen.Id("query"),
	))
}

// ReturnIDs emits a scan of every returned identifier.
func (BaseDialect) ReturnIDs(g *jen.Group, t *Table) {
	g.Return(jen.Qual(RuntimePkg, "QueryIDs").Types(typeCode(t.ID().BaseType())).Call(
		jen.Id("ctx"), jen.Id("db"), jen.Id("query"),
	))
}
