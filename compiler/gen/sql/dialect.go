package sql

import (
	"fmt"

	"github.com/syssam/dbgen/compiler/gen"
	"github.com/syssam/dbgen/dialect"
	"github.com/syssam/dbgen/dialect/sql/schema"
)

// NewDialect returns the generator dialect with the given name.
func NewDialect(name string) (gen.Dialect, error) {
	switch name {
	case dialect.Postgres:
		return Postgres{}, nil
	case dialect.MySQL:
		return MySQL{}, nil
	case dialect.SQLite:
		return SQLite{}, nil
	default:
		return nil, gen.NewConfigError("Dialect", name, fmt.Sprintf("unsupported dialect; use %s, %s or %s", dialect.Postgres, dialect.MySQL, dialect.SQLite))
	}
}

// NewGenerator returns a generator reading the catalog of drv, with the
// dialect of drv.
func NewGenerator(drv dialect.Driver, opts ...gen.Option) (*gen.Generator, error) {
	d, err := NewDialect(drv.Dialect())
	if err != nil {
		return nil, err
	}
	c, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	var iopts []schema.InspectOption
	if c.Schema != "" {
		iopts = append(iopts, schema.WithSchema(c.Schema))
	}
	insp, err := schema.NewInspector(drv, iopts...)
	if err != nil {
		return nil, err
	}
	return gen.New(insp, d, c), nil
}
