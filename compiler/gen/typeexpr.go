package gen

import (
	"strings"

	"github.com/dave/jennifer/jen"
)

// RuntimePkg is the import path of the package generated code builds its
// statements with.
const RuntimePkg = "github.com/syssam/dbgen/dialect/sql"

// knownPackages resolves the short package qualifiers used in vocabularies
// and overrides to import paths.
var knownPackages = map[string]string{
	"time":    "time",
	"json":    "encoding/json",
	"netip":   "net/netip",
	"uuid":    "github.com/google/uuid",
	"decimal": "github.com/shopspring/decimal",
	"sql":     RuntimePkg,
}

// typeCode renders a Go type expression such as "*[]uuid.UUID" or
// "github.com/acme/types.Mood" as jennifer code with tracked imports.
func typeCode(expr string) jen.Code {
	if !strings.Contains(expr, ".") {
		// Built-in types render as a single identifier to keep "*[]string"
		// free of inner whitespace.
		return jen.Id(expr)
	}
	s := jen.Null()
	for {
		switch {
		case strings.HasPrefix(expr, "*"):
			s.Op("*")
			expr = expr[1:]
			continue
		case strings.HasPrefix(expr, "[]"):
			s.Index()
			expr = expr[2:]
			continue
		}
		break
	}
	path, name := splitQualified(expr)
	if path == "" {
		return s.Id(name)
	}
	return s.Qual(path, name)
}

// splitQualified splits "pkg.Name" or "import/path.Name" into an import path
// and a type name.
func splitQualified(expr string) (path, name string) {
	i := strings.LastIndex(expr, ".")
	if i < 0 {
		return "", expr
	}
	pkg, name := expr[:i], expr[i+1:]
	if p, ok := knownPackages[pkg]; ok {
		return p, name
	}
	return pkg, name
}

// funcCode renders a qualified function reference such as
// "github.com/acme/types.FormatMood".
func funcCode(expr string) *jen.Statement {
	path, name := splitQualified(expr)
	if path == "" {
		return jen.Id(name)
	}
	return jen.Qual(path, name)
}
