package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/syssam/dbgen/compiler/gen"
	gensql "github.com/syssam/dbgen/compiler/gen/sql"
	"github.com/syssam/dbgen/dialect"
	"github.com/syssam/dbgen/dialect/sql"
)

// session is the state shared by the commands of one invocation.
type session struct {
	config    *gen.FileConfig
	logger    *slog.Logger
	drv       *sql.Driver
	debug     *sql.DebugDriver
	generator *gen.Generator
}

// openSession loads the configuration, opens the catalog connection and
// builds the generator.
func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := gen.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.getenv != nil {
		if dsn := opts.getenv(DSNEnv); dsn != "" {
			cfg.DSN = dsn
		}
	}
	s := &session{config: cfg, logger: newLogger(cmd.ErrOrStderr(), opts.verbose)}
	if err := checkDSN(cfg); err != nil {
		return nil, err
	}
	if s.drv, err = sql.Open(cfg.Dialect, cfg.DSN); err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Dialect, err)
	}
	var drv dialect.Driver = s.drv
	if opts.verbose {
		s.debug = sql.NewDebugDriver(s.drv, s.logger)
		drv = s.debug
	}
	genOpts := append(cfg.Options(), gen.WithLogger(s.logger))
	if s.generator, err = gensql.NewGenerator(drv, genOpts...); err != nil {
		_ = s.drv.Close()
		return nil, err
	}
	return s, nil
}

// Close logs the query statistics and closes the connection.
func (s *session) Close() error {
	if s.debug != nil {
		s.logger.Debug("catalog queries", "stats", s.debug.QueryStats().Stats().String())
	}
	return s.drv.Close()
}

// checkDSN validates dialect specific connection strings before connecting.
func checkDSN(cfg *gen.FileConfig) error {
	if cfg.Dialect != dialect.MySQL {
		return nil
	}
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return fmt.Errorf("parse mysql dsn: %w", err)
	}
	if mc.DBName == "" && cfg.Schema == "" {
		return errors.New("mysql dsn must name a database when no schema is configured")
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
