package dispatch

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// SyncDispatcher runs calls in the caller's goroutine, one after another.
type SyncDispatcher struct {
	executor *Executor
	timeout  time.Duration

	panicHandler PanicHandler
	logger       zerolog.Logger

	dispatched  atomic.Uint64
	succeeded   atomic.Uint64
	failed      atomic.Uint64
	panicked    atomic.Uint64
	skipped     atomic.Uint64
	totalTimeNs atomic.Int64
}

// NewSyncDispatcher creates a new synchronous dispatcher.
func NewSyncDispatcher(opts ...SyncOption) *SyncDispatcher {
	d := &SyncDispatcher{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}

	d.executor = NewExecutor(
		WithExecutorPanicHandler(d.panicHandler),
		WithExecutorLogger(d.logger),
	)

	return d
}

// SyncOption configures a SyncDispatcher.
type SyncOption func(*SyncDispatcher)

// WithPanicHandler sets the panic handler for the dispatcher.
func WithPanicHandler(h PanicHandler) SyncOption {
	return func(d *SyncDispatcher) {
		d.panicHandler = h
	}
}

// WithTimeout sets a per call timeout. Zero disables it.
func WithTimeout(timeout time.Duration) SyncOption {
	return func(d *SyncDispatcher) {
		d.timeout = timeout
	}
}

// WithLogger sets the logger used for recovered panics.
func WithLogger(logger zerolog.Logger) SyncOption {
	return func(d *SyncDispatcher) {
		d.logger = logger
	}
}

// Dispatch runs a single call and blocks until it returns, times out or
// panics.
func (d *SyncDispatcher) Dispatch(ctx context.Context, call Call) Result {
	d.dispatched.Add(1)

	result := d.executor.ExecuteWithTimeout(ctx, call, d.timeout)

	d.totalTimeNs.Add(result.Duration.Nanoseconds())

	switch {
	case result.Skipped:
		d.skipped.Add(1)
	case result.Panicked:
		d.panicked.Add(1)
	case result.Error != nil:
		d.failed.Add(1)
	case result.Success:
		d.succeeded.Add(1)
	}

	return result
}

// DispatchAll runs calls in order. A failing call does not stop the rest;
// once ctx is done the remaining calls are marked skipped.
func (d *SyncDispatcher) DispatchAll(ctx context.Context, calls []Call) []Result {
	results := make([]Result, len(calls))

	for i, call := range calls {
		results[i] = d.Dispatch(ctx, call)

		if err := ctx.Err(); err != nil {
			for j := i + 1; j < len(calls); j++ {
				d.dispatched.Add(1)
				d.skipped.Add(1)
				results[j] = Result{Error: err, Skipped: true}
			}
			return results
		}
	}

	return results
}

// Stats returns dispatch statistics.
// Counters are read individually, so a snapshot taken during dispatch may be
// slightly inconsistent.
func (d *SyncDispatcher) Stats() SyncDispatcherStats {
	dispatched := d.dispatched.Load()
	totalNs := d.totalTimeNs.Load()

	var avgNs int64
	if dispatched > 0 {
		avgNs = totalNs / int64(dispatched)
	}

	return SyncDispatcherStats{
		Dispatched:    dispatched,
		Succeeded:     d.succeeded.Load(),
		Failed:        d.failed.Load(),
		Panicked:      d.panicked.Load(),
		Skipped:       d.skipped.Load(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}

// SyncDispatcherStats contains statistics for a sync dispatcher.
type SyncDispatcherStats struct {
	Dispatched uint64
	Succeeded  uint64
	Failed     uint64
	Panicked   uint64
	Skipped    uint64

	// TotalDuration is the cumulative time spent in calls.
	TotalDuration time.Duration

	// AvgDuration is the average call duration.
	AvgDuration time.Duration
}
