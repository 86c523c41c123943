package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"maps"
	"runtime"
	"strings"
)

// DefaultHeader is the comment generated files start with.
const DefaultHeader = "Code generated by dbgen. DO NOT EDIT."

// Config holds the generation settings shared by every table.
type Config struct {
	// Package is the package name of generated files.
	Package string
	// Target is the output directory of GenerateFile.
	Target string
	// Header is the comment placed above the package clause.
	Header string
	// FieldNaming selects how column names become field names.
	FieldNaming FieldNaming
	// Markers are extra struct tag keys added next to db and json.
	Markers []string
	// Annotations are comment lines emitted above every record type.
	Annotations []string
	// Overrides resolve raw types the dialect vocabulary does not know.
	Overrides Overrides
	// Stringers map Go type expressions to qualified functions rendering
	// values of the type as SQL text, e.g. "types.Mood" =>
	// "github.com/acme/types.FormatMood".
	Stringers map[string]string
	// Schema scopes introspection. Empty means the connection's current one.
	Schema string
	// Tables are generated by GenerateFiles when it is called without tables.
	Tables []string
	// Workers bounds the number of tables generated in parallel.
	Workers int
	Logger  *slog.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithPackage sets the package name of generated files.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHeader sets the file header comment.
// An empty header omits the comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithFieldNaming sets the field naming style.
func WithFieldNaming(n FieldNaming) Option {
	return func(c *Config) error {
		if !n.Valid() {
			return NewConfigError("FieldNaming", n, "unsupported field naming; use pascal or column")
		}
		c.FieldNaming = n
		return nil
	}
}

// WithMarkers adds struct tag keys to every field.
func WithMarkers(markers ...string) Option {
	return func(c *Config) error {
		for _, m := range markers {
			if m == "" || strings.ContainsAny(m, " \t\":`") {
				return NewConfigError("Markers", m, "invalid struct tag key")
			}
		}
		c.Markers = append(c.Markers, markers...)
		return nil
	}
}

// WithAnnotations adds comment lines above every record type.
func WithAnnotations(annotations ...string) Option {
	return func(c *Config) error {
		for _, a := range annotations {
			if strings.ContainsAny(a, "\r\n") {
				return NewConfigError("Annotations", a, "annotation must be a single line")
			}
		}
		c.Annotations = append(c.Annotations, annotations...)
		return nil
	}
}

// WithOverrides adds type overrides. Keys are normalized to upper case;
// ambiguous keys fail with a *dbgen.MalformedOverrideError.
func WithOverrides(overrides map[string]string) Option {
	return func(c *Config) error {
		merged := make(map[string]string, len(c.Overrides)+len(overrides))
		maps.Copy(merged, c.Overrides)
		maps.Copy(merged, overrides)
		o, err := NewOverrides(merged)
		if err != nil {
			return err
		}
		c.Overrides = o
		return nil
	}
}

// WithStringer registers the function rendering values of a Go type as SQL
// text. It takes precedence over the built-in renderings.
func WithStringer(typ, fn string) Option {
	return func(c *Config) error {
		if typ == "" || fn == "" {
			return NewConfigError("Stringers", typ, "type and function cannot be empty")
		}
		if c.Stringers == nil {
			c.Stringers = make(map[string]string)
		}
		c.Stringers[typ] = fn
		return nil
	}
}

// WithSchema scopes introspection to a schema (a database on MySQL).
func WithSchema(name string) Option {
	return func(c *Config) error {
		c.Schema = name
		return nil
	}
}

// WithTables sets the tables generated by default.
func WithTables(tables ...string) Option {
	return func(c *Config) error {
		c.Tables = append(c.Tables, tables...)
		return nil
	}
}

// WithWorkers sets the number of tables generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger of the generator.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies the options in order, stopping at the first error.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// defaultConfig returns a Config with every default set.
func defaultConfig() *Config {
	return &Config{
		Package:     "models",
		Target:      ".",
		Header:      DefaultHeader,
		FieldNaming: FieldNamingPascal,
		Overrides:   Overrides{},
		Workers:     runtime.GOMAXPROCS(0),
		Logger:      slog.Default(),
	}
}

// withDefaults returns a copy of c with zero fields set to their defaults.
// The header is kept as is, an empty header is valid.
func (c *Config) withDefaults() *Config {
	d := defaultConfig()
	if c == nil {
		return d
	}
	cc := *c
	if cc.Package == "" {
		cc.Package = d.Package
	}
	if cc.Target == "" {
		cc.Target = d.Target
	}
	if cc.FieldNaming == "" {
		cc.FieldNaming = d.FieldNaming
	}
	if cc.Overrides == nil {
		cc.Overrides = d.Overrides
	}
	if cc.Workers <= 0 {
		cc.Workers = d.Workers
	}
	if cc.Logger == nil {
		cc.Logger = d.Logger
	}
	return &cc
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
