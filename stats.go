package qbsql

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ExecStats holds query execution statistics.
type ExecStats struct {
	// TotalExecutes is the total number of queries submitted.
	TotalExecutes atomic.Int64
	// TotalDuration is the total time spent in the transport.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of executions exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of transport errors.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *ExecStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalExecutes: s.TotalExecutes.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *ExecStats) Reset() {
	s.TotalExecutes.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of execution statistics.
type StatsSnapshot struct {
	TotalExecutes int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgDuration returns the average execution duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	if s.TotalExecutes == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalExecutes)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"executes=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalExecutes, s.TotalDuration, s.AvgDuration(), s.SlowQueries, s.Errors,
	)
}

// SlowHook is a function called when a slow execution is detected.
type SlowHook func(ctx context.Context, query, entity string, duration time.Duration)

// StatsTransport wraps a Transport with execution statistics collection.
type StatsTransport struct {
	next          Transport
	stats         *ExecStats
	slowThreshold time.Duration
	slowHook      SlowHook
	mu            sync.RWMutex
}

// StatsOption configures the StatsTransport.
type StatsOption func(*StatsTransport)

// WithSlowThreshold sets the threshold for slow execution detection.
// Executions taking longer than this duration will be counted as slow.
// Default is 500ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(t *StatsTransport) {
		t.slowThreshold = d
	}
}

// WithSlowHook sets a callback function for slow executions.
// The hook is called whenever an execution exceeds the slow threshold.
func WithSlowHook(hook SlowHook) StatsOption {
	return func(t *StatsTransport) {
		t.slowHook = hook
	}
}

// WithSlowLog logs slow executions to the default logger.
// This is a convenience wrapper around WithSlowHook.
func WithSlowLog() StatsOption {
	return WithSlowHook(func(_ context.Context, query, entity string, duration time.Duration) {
		slog.Warn("slow query detected", "duration", duration, "entity", entity, "query", query)
	})
}

// NewStatsTransport wraps a Transport with statistics collection.
//
// Example:
//
//	st := qbsql.NewStatsTransport(api,
//	    qbsql.WithSlowThreshold(time.Second),
//	    qbsql.WithSlowLog(),
//	)
//	rows, err := query.Execute(ctx, st)
//
//	// Later, check statistics:
//	fmt.Println(st.ExecStats().Stats())
func NewStatsTransport(next Transport, opts ...StatsOption) *StatsTransport {
	t := &StatsTransport{
		next:          next,
		stats:         &ExecStats{},
		slowThreshold: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ExecStats returns the underlying ExecStats for reading statistics.
func (t *StatsTransport) ExecStats() *ExecStats {
	return t.stats
}

// SlowThreshold returns the current slow execution threshold.
func (t *StatsTransport) SlowThreshold() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slowThreshold
}

// SetSlowThreshold updates the slow execution threshold.
func (t *StatsTransport) SetSlowThreshold(threshold time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slowThreshold = threshold
}

// Execute submits the query and records statistics.
func (t *StatsTransport) Execute(ctx context.Context, query, entity string) ([]map[string]any, error) {
	start := time.Now()
	rows, err := t.next.Execute(ctx, query, entity)
	t.record(ctx, query, entity, start, err)
	return rows, err
}

func (t *StatsTransport) record(ctx context.Context, query, entity string, start time.Time, err error) {
	duration := time.Since(start)
	t.stats.TotalExecutes.Add(1)
	t.stats.TotalDuration.Add(int64(duration))

	if err != nil {
		t.stats.Errors.Add(1)
	}

	t.mu.RLock()
	threshold := t.slowThreshold
	hook := t.slowHook
	t.mu.RUnlock()

	if duration > threshold {
		t.stats.SlowQueries.Add(1)
		if hook != nil {
			hook(ctx, query, entity, duration)
		}
	}
}

// DebugTransport wraps a Transport with debug logging.
type DebugTransport struct {
	next Transport
	log  func(context.Context, ...any)
}

// DebugOption configures the DebugTransport.
type DebugOption func(*DebugTransport)

// DebugWithLog sets a custom log function.
func DebugWithLog(logFunc func(context.Context, ...any)) DebugOption {
	return func(d *DebugTransport) {
		d.log = logFunc
	}
}

// NewDebugTransport wraps a Transport with debug logging.
//
// Example:
//
//	dt := qbsql.NewDebugTransport(api, qbsql.DebugWithLog(func(ctx context.Context, v ...any) {
//	    log.Println(v...)
//	}))
//	rows, err := query.Execute(ctx, dt)
func NewDebugTransport(next Transport, opts ...DebugOption) *DebugTransport {
	d := &DebugTransport{
		next: next,
		log: func(_ context.Context, v ...any) {
			slog.Info(fmt.Sprint(v...))
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute logs the query and submits it.
func (d *DebugTransport) Execute(ctx context.Context, query, entity string) ([]map[string]any, error) {
	d.log(ctx, fmt.Sprintf("execute: %s entity: %s", query, entity))
	return d.next.Execute(ctx, query, entity)
}

// Ensure interfaces are implemented.
var (
	_ Transport = (*StatsTransport)(nil)
	_ Transport = (*DebugTransport)(nil)
)
