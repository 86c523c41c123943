package gen

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/dbgen"
	"github.com/syssam/dbgen/dialect/sql/schema"
)

// ColumnInfo describes one introspected column.
type ColumnInfo = schema.ColumnInfo

// StructInfo is the generated source of one table.
type StructInfo struct {
	StructName string
	// Content is the complete Go file.
	Content string
	// UserTypes holds the raw types resolved through overrides.
	UserTypes map[string]UserType
	Columns   []ColumnInfo
}

// SectionKind identifies a part of a generated file.
type SectionKind int

// Sections in the order they appear in generated files.
const (
	SectionStruct SectionKind = iota
	SectionInsertReturningID
	SectionInsert
	SectionBatchInsertReturningID
	SectionBatchInsert
	SectionSelect
	SectionSelectByID
	SectionDeleteByID
)

var sectionNames = [...]string{
	SectionStruct:                 "struct",
	SectionInsertReturningID:      "insert returning id",
	SectionInsert:                 "insert",
	SectionBatchInsertReturningID: "batch insert returning ids",
	SectionBatchInsert:            "batch insert",
	SectionSelect:                 "select",
	SectionSelectByID:             "select by id",
	SectionDeleteByID:             "delete by id",
}

func (k SectionKind) String() string {
	if k < 0 || int(k) >= len(sectionNames) {
		return fmt.Sprintf("SectionKind(%d)", int(k))
	}
	return sectionNames[k]
}

// Section is the code of one section. A section without code contributes
// nothing to the file.
type Section struct {
	Kind SectionKind
	Code []jen.Code
}

// Generator generates Go sources for database tables.
type Generator struct {
	inspector schema.Inspector
	dialect   Dialect
	mapper    *TypeMapper
	config    *Config
}

// New returns a Generator reading the catalog through inspector. Zero
// fields of c take their defaults; a nil c is the default configuration.
func New(inspector schema.Inspector, d Dialect, c *Config) *Generator {
	return &Generator{
		inspector: inspector,
		dialect:   d,
		mapper:    NewTypeMapper(d.Vocabulary()),
		config:    c.withDefaults(),
	}
}

// NewGenerator returns a Generator configured with opts.
func NewGenerator(inspector schema.Inspector, d Dialect, opts ...Option) (*Generator, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return New(inspector, d, c), nil
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config {
	return g.config
}

// Dialect returns the generator dialect.
func (g *Generator) Dialect() Dialect {
	return g.dialect
}

// Tables lists the tables and views of the catalog.
func (g *Generator) Tables(ctx context.Context) ([]schema.TableInfo, error) {
	return g.inspector.Tables(ctx)
}

// GenerateModule generates the source of a table and returns it without
// writing anything. A table that does not exist or has no columns fails
// with a *dbgen.TableNotFoundError.
func (g *Generator) GenerateModule(ctx context.Context, table string, markers, annotations []string, overrides Overrides) (*StructInfo, error) {
	columns, err := g.inspector.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, dbgen.NewTableNotFoundError(table)
	}
	return g.build(table, columns, markers, annotations, overrides)
}

// GenerateFile generates the source of a table with the configured markers,
// annotations and overrides and writes it to <target>/<table>.go, replacing
// any previous file.
//
// Unlike GenerateModule, a table that does not exist or has no columns is
// not an error: a warning is logged and nothing is written.
//
// The file is overwritten without locking. Callers must not generate the
// same table concurrently.
func (g *Generator) GenerateFile(ctx context.Context, table string) error {
	columns, err := g.inspector.Columns(ctx, table)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		g.config.Logger.WarnContext(ctx, "table not found or has no columns, skipping", "table", table)
		return nil
	}
	info, err := g.build(table, columns, g.config.Markers, g.config.Annotations, g.config.Overrides)
	if err != nil {
		return err
	}
	path := filepath.Join(g.config.Target, FileName(table))
	if err := WriteSource(path, []byte(info.Content)); err != nil {
		return NewGenerationError(table, path, "write", err)
	}
	g.config.Logger.InfoContext(ctx, "generated", "table", table, "file", path)
	return nil
}

// GenerateFiles runs GenerateFile for every table in parallel. Without
// tables it generates the configured ones, or every base table of the
// catalog when none are configured. Duplicate names are generated once.
func (g *Generator) GenerateFiles(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		tables = g.config.Tables
	}
	if len(tables) == 0 {
		infos, err := g.Tables(ctx)
		if err != nil {
			return err
		}
		for _, t := range infos {
			if !t.IsView {
				tables = append(tables, t.Name)
			}
		}
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Workers)
	seen := make(map[string]bool, len(tables))
	for _, table := range tables {
		if seen[table] {
			continue
		}
		seen[table] = true
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.GenerateFile(ctx, table)
			}
		})
	}
	return eg.Wait()
}

// buildSuffixes are file name suffixes the go tool gives a meaning: test
// files and GOOS/GOARCH build constraints.
var buildSuffixes = map[string]bool{
	"test": true,
	// GOOS
	"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
	"hurd": true, "illumos": true, "ios": true, "js": true, "linux": true, "nacl": true,
	"netbsd": true, "openbsd": true, "plan9": true, "solaris": true, "wasip1": true,
	"windows": true, "zos": true,
	// GOARCH
	"386": true, "amd64": true, "amd64p32": true, "arm": true, "armbe": true,
	"arm64": true, "arm64be": true, "loong64": true, "mips": true, "mipsle": true,
	"mips64": true, "mips64le": true, "mips64p32": true, "mips64p32le": true,
	"ppc": true, "ppc64": true, "ppc64le": true, "riscv": true, "riscv64": true,
	"s390": true, "s390x": true, "sparc": true, "sparc64": true, "wasm": true,
}

// FileName returns the name of the file generated for table. Characters
// other than letters, digits, '_' and '-' become '_', so the file always
// lands in the target directory. Names the go tool would ignore, or read
// as a test or build-constrained file, are adjusted.
//
//	FileName("users")     // users.go
//	FileName("foo_test")  // foo_test_.go
//	FileName("../etc")    // table___etc.go
func FileName(table string) string {
	stem := strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, table)
	if stem == "" || stem[0] == '_' || stem[0] == '-' {
		stem = "table" + stem
	}
	if i := strings.LastIndexByte(stem, '_'); i >= 0 && buildSuffixes[strings.ToLower(stem[i+1:])] {
		stem += "_"
	}
	return stem + ".go"
}

// build resolves the columns and renders every section. Nothing is returned
// unless every column resolves and every section renders.
func (g *Generator) build(table string, columns []ColumnInfo, markers, annotations []string, overrides Overrides) (*StructInfo, error) {
	start := time.Now()
	t, err := NewTable(g.mapper, g.config.FieldNaming, table, columns, overrides)
	if err != nil {
		return nil, err
	}
	sections, err := g.Sections(t, markers, annotations)
	if err != nil {
		return nil, err
	}
	content, err := g.Render(sections)
	if err != nil {
		return nil, NewGenerationError(table, "", "render", err)
	}
	g.config.Logger.Debug("rendered table", "table", table, "dialect", g.dialect.Name(), "sections", len(sections), "duration", time.Since(start))
	return &StructInfo{
		StructName: t.StructName,
		Content:    content,
		UserTypes:  t.UserTypes,
		Columns:    columns,
	}, nil
}

// Sections renders the sections of a table in file order.
func (g *Generator) Sections(t *Table, markers, annotations []string) ([]Section, error) {
	e := &emitter{dialect: g.dialect, custom: g.config.Stringers}
	steps := []struct {
		kind SectionKind
		emit func() ([]jen.Code, error)
	}{
		{SectionStruct, func() ([]jen.Code, error) { return []jen.Code{genStruct(t, markers, annotations)}, nil }},
		{SectionInsertReturningID, func() ([]jen.Code, error) { return e.genInsert(t, true) }},
		{SectionInsert, func() ([]jen.Code, error) { return e.genInsert(t, false) }},
		{SectionBatchInsertReturningID, func() ([]jen.Code, error) { return e.genBatchInsert(t, true) }},
		{SectionBatchInsert, func() ([]jen.Code, error) { return e.genBatchInsert(t, false) }},
		{SectionSelect, func() ([]jen.Code, error) { return e.genSelect(t) }},
		{SectionSelectByID, func() ([]jen.Code, error) { return e.genSelectByID(t) }},
		{SectionDeleteByID, func() ([]jen.Code, error) { return e.genDeleteByID(t) }},
	}
	sections := make([]Section, 0, len(steps))
	for _, s := range steps {
		code, err := s.emit()
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Kind: s.kind, Code: code})
	}
	return sections, nil
}

// Render renders sections as a Go file of the configured package.
func (g *Generator) Render(sections []Section) (string, error) {
	f := jen.NewFile(g.config.Package)
	if g.config.Header != "" {
		f.HeaderComment(g.config.Header)
	}
	for _, s := range sections {
		for _, c := range s.Code {
			f.Add(c).Line()
		}
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
