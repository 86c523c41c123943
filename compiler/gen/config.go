package gen

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/dbgen/dialect"
)

// FileConfig is the YAML configuration read by the dbgen command.
type FileConfig struct {
	Dialect     string            `yaml:"dialect"`
	DSN         string            `yaml:"dsn"`
	Schema      string            `yaml:"schema"`
	Package     string            `yaml:"package"`
	Target      string            `yaml:"target"`
	Header      *string           `yaml:"header"`
	FieldNaming string            `yaml:"field_naming"`
	Markers     []string          `yaml:"markers"`
	Annotations []string          `yaml:"annotations"`
	Overrides   map[string]string `yaml:"overrides"`
	Stringers   map[string]string `yaml:"stringers"`
	Tables      []string          `yaml:"tables"`
	Workers     int               `yaml:"workers"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates a YAML configuration.
func ParseConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *FileConfig) validate() error {
	if !dialect.Supported(c.Dialect) {
		return NewConfigError("dialect", c.Dialect, "dialect must be postgres, mysql or sqlite")
	}
	if c.DSN == "" {
		return NewConfigError("dsn", nil, "dsn is required")
	}
	if c.Workers < 0 {
		return NewConfigError("workers", c.Workers, "workers cannot be negative")
	}
	for _, t := range c.Tables {
		if t == "" {
			return NewConfigError("tables", nil, "table name cannot be empty")
		}
	}
	return nil
}

// Options returns the generation options described by the file. Unset
// fields keep the Config defaults.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.Package != "" {
		opts = append(opts, WithPackage(c.Package))
	}
	if c.Target != "" {
		opts = append(opts, WithTarget(c.Target))
	}
	if c.Header != nil {
		opts = append(opts, WithHeader(*c.Header))
	}
	if c.FieldNaming != "" {
		opts = append(opts, WithFieldNaming(FieldNaming(c.FieldNaming)))
	}
	if c.Schema != "" {
		opts = append(opts, WithSchema(c.Schema))
	}
	if len(c.Markers) > 0 {
		opts = append(opts, WithMarkers(c.Markers...))
	}
	if len(c.Annotations) > 0 {
		opts = append(opts, WithAnnotations(c.Annotations...))
	}
	if len(c.Overrides) > 0 {
		opts = append(opts, WithOverrides(c.Overrides))
	}
	for typ, fn := range c.Stringers {
		opts = append(opts, WithStringer(typ, fn))
	}
	if len(c.Tables) > 0 {
		opts = append(opts, WithTables(c.Tables...))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}
