// Package dispatch runs listener calls for the event bus.
//
// Every call is executed through an Executor, which recovers panics,
// captures the stack trace and measures how long the call took. A recovered
// panic is reported to the configured zerolog logger and PanicHandler and
// then turned into a Result, so one misbehaving listener cannot take the
// publisher down with it.
//
// SyncDispatcher runs calls in the caller's goroutine:
//
//	d := dispatch.NewSyncDispatcher(
//	    dispatch.WithLogger(logger),
//	    dispatch.WithTimeout(time.Second),
//	)
//	results := d.DispatchAll(ctx, calls)
//	for _, r := range results {
//	    if !r.IsSuccess() {
//	        // handle r.Error or r.PanicValue
//	    }
//	}
//
// Calls that never ran because the context was done are reported as skipped
// with the context error.
package dispatch
