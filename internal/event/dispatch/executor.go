package dispatch

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
)

// Executor runs calls with panic recovery and timing.
type Executor struct {
	panicHandler PanicHandler
	logger       zerolog.Logger
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecutorPanicHandler sets the panic handler for the executor.
func WithExecutorPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		e.panicHandler = h
	}
}

// WithExecutorLogger sets the logger recovered panics are reported to.
func WithExecutorLogger(logger zerolog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// Execute runs call and returns its result. A done context skips the call.
func (e *Executor) Execute(ctx context.Context, call Call) (result Result) {
	if err := ctx.Err(); err != nil {
		return Result{Error: err, Skipped: true}
	}

	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		r := recover()
		if r == nil {
			return
		}

		stack := debug.Stack()

		result.Success = false
		result.Panicked = true
		result.PanicValue = r
		result.PanicStack = stack

		e.logger.Error().
			Interface("_panic", r).
			Bytes("_stack", stack).
			Msg("Listener panicked")

		if e.panicHandler != nil {
			func() {
				// a panicking panic handler must not take the caller down
				defer func() { _ = recover() }()
				e.panicHandler(r, stack)
			}()
		}
	}()

	if err := call(ctx); err != nil {
		result.Error = err
	} else {
		result.Success = true
	}

	return result
}

// ExecuteWithTimeout runs call with a deadline. The call must respect
// context cancellation for the timeout to take effect.
func (e *Executor) ExecuteWithTimeout(ctx context.Context, call Call, timeout time.Duration) Result {
	if timeout <= 0 {
		return e.Execute(ctx, call)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return e.Execute(ctx, call)
}
