package dispatch

import (
	"context"
	"time"
)

// Call is a single listener invocation prepared by the caller.
type Call func(ctx context.Context) error

// Result represents the outcome of a call.
type Result struct {
	// Success is true if the call completed without error or panic.
	Success bool

	// Error is the error returned by the call, or the context error when
	// the call was skipped.
	Error error

	// Panicked is true if the call panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the call took.
	Duration time.Duration

	// Skipped is true if the call never ran because the context was done.
	Skipped bool
}

// IsSuccess returns true if the result indicates successful execution.
func (r Result) IsSuccess() bool {
	return r.Success && !r.Panicked && r.Error == nil
}

// IsError returns true if the call returned an error.
func (r Result) IsError() bool {
	return r.Error != nil && !r.Panicked && !r.Skipped
}

// IsPanic returns true if the call panicked.
func (r Result) IsPanic() bool {
	return r.Panicked
}

// PanicHandler is called after a call panicked, with the recovered value
// and the stack trace.
type PanicHandler func(panicValue any, stack []byte)
