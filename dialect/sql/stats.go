package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// QueryStats holds catalog query statistics.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing queries.
	TotalDuration atomic.Int64 // nanoseconds
	// Errors is the count of query errors.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		Errors:        s.Errors.Load(),
	}
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	Errors        int64
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d duration=%s errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.Errors)
}

// DebugDriver wraps a Driver, logging every statement at debug level and
// collecting statistics.
type DebugDriver struct {
	*Driver
	logger *slog.Logger
	stats  QueryStats
}

// NewDebugDriver wraps a Driver with debug logging.
//
// Example:
//
//	drv, _ := sql.Open(dialect.Postgres, dsn)
//	debug := sql.NewDebugDriver(drv, slog.Default())
//	defer func() { slog.Info("catalog", "stats", debug.QueryStats().Stats()) }()
func NewDebugDriver(drv *Driver, logger *slog.Logger) *DebugDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{Driver: drv, logger: logger}
}

// QueryStats returns the collected statistics.
func (d *DebugDriver) QueryStats() *QueryStats {
	return &d.stats
}

// Query executes a query and logs it.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.stats.TotalQueries.Add(1)
	d.record(ctx, "query", query, args, start, err)
	return err
}

// Exec executes a statement and logs it.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.stats.TotalExecs.Add(1)
	d.record(ctx, "exec", query, args, start, err)
	return err
}

func (d *DebugDriver) record(ctx context.Context, op, query string, args any, start time.Time, err error) {
	duration := time.Since(start)
	d.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		d.stats.Errors.Add(1)
		d.logger.DebugContext(ctx, op+" failed", "query", query, "args", args, "duration", duration, "error", err)
		return
	}
	d.logger.DebugContext(ctx, op, "query", query, "args", args, "duration", duration)
}
