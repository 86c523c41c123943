package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
)

func TestBaseDialect(t *testing.T) {
	tbl := testTable(t, "users", []ColumnInfo{col("id", "uuid", false), col("name", "text", false)})
	var d BaseDialect

	assert.Equal(t, "uuid.UUID", d.IDType(tbl))

	code := squash(render(jen.BlockFunc(func(g *jen.Group) {
		d.Returning(g, tbl)
		d.ReturnID(g, tbl)
	})))
	assert.Contains(t, code, `b.Returning("id")`)
	assert.Contains(t, code, "return sql.QueryID[uuid.UUID](ctx, db, query)")

	code = squash(render(jen.BlockFunc(func(g *jen.Group) {
		d.ReturnIDs(g, tbl)
	})))
	assert.Contains(t, code, "return sql.QueryIDs[uuid.UUID](ctx, db, query)")
}
