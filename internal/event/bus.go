package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/topicbus/internal/event/dispatch"
)

// LocalBus is an in-memory Bus. Send runs the listeners of a channel in the
// caller's goroutine, in registration order.
//
// LocalBus is safe for concurrent use. Listeners run without any bus lock
// held and may call back into the bus.
type LocalBus[T any] struct {
	mu       sync.RWMutex
	channels map[string][]*Listener[T]

	dispatcher *dispatch.SyncDispatcher
	logger     zerolog.Logger

	sent      atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
}

var _ Bus[any] = (*LocalBus[any])(nil)

// NewLocalBus creates an empty bus.
func NewLocalBus[T any](opts ...BusOption) *LocalBus[T] {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &LocalBus[T]{
		channels: make(map[string][]*Listener[T]),
		logger:   config.logger,
		dispatcher: dispatch.NewSyncDispatcher(
			dispatch.WithLogger(config.logger),
			dispatch.WithTimeout(config.timeout),
		),
	}
}

// On registers l on channel. The same listener may be registered more than
// once and is then called once per registration.
func (b *LocalBus[T]) On(channel string, l *Listener[T]) error {
	if channel == "" {
		return ErrInvalidChannel
	}
	if l == nil {
		return ErrNilListener
	}

	b.mu.Lock()
	b.channels[channel] = append(b.channels[channel], l)
	b.mu.Unlock()

	return nil
}

// RemoveListener removes the most recent registration of l from channel.
func (b *LocalBus[T]) RemoveListener(channel string, l *Listener[T]) error {
	if channel == "" {
		return ErrInvalidChannel
	}
	if l == nil {
		return ErrNilListener
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.channels[channel]
	for i := len(listeners) - 1; i >= 0; i-- {
		if listeners[i] != l {
			continue
		}

		if len(listeners) == 1 {
			delete(b.channels, channel)
			return nil
		}

		// copy so that a Send iterating the old slice is not affected
		updated := make([]*Listener[T], 0, len(listeners)-1)
		updated = append(updated, listeners[:i]...)
		updated = append(updated, listeners[i+1:]...)
		b.channels[channel] = updated

		return nil
	}

	return ErrListenerNotFound
}

// RemoveAllListeners removes every listener of channel. Removing from a
// channel without listeners is not an error.
func (b *LocalBus[T]) RemoveAllListeners(channel string) error {
	if channel == "" {
		return ErrInvalidChannel
	}

	b.mu.Lock()
	delete(b.channels, channel)
	b.mu.Unlock()

	return nil
}

// Send calls every listener registered on channel with payload. A failing or
// panicking listener does not stop the others; their errors are joined into
// the returned error. Sending on a channel without listeners is a no-op.
func (b *LocalBus[T]) Send(ctx context.Context, channel string, payload T) error {
	if channel == "" {
		return ErrInvalidChannel
	}

	b.mu.RLock()
	listeners := b.channels[channel]
	b.mu.RUnlock()

	if len(listeners) == 0 {
		return nil
	}

	b.sent.Add(1)

	calls := make([]dispatch.Call, len(listeners))
	for i, l := range listeners {
		calls[i] = func(ctx context.Context) error {
			return l.Handle(ctx, channel, payload)
		}
	}

	var (
		errs    []error
		skipped error
	)

	for i, res := range b.dispatcher.DispatchAll(ctx, calls) {
		l := listeners[i]

		switch {
		case res.Skipped:
			skipped = res.Error
		case res.Panicked:
			b.panicked.Add(1)
			errs = append(errs, &PanicError{
				ListenerID: l.ID(),
				Channel:    channel,
				Value:      res.PanicValue,
				Stack:      string(res.PanicStack),
			})
		case res.Error != nil:
			b.failed.Add(1)
			b.logger.Warn().
				Err(res.Error).
				Str("_channel", channel).
				Str("_listener", l.ID()).
				Msg("Listener failed")
			errs = append(errs, &ListenerError{ListenerID: l.ID(), Channel: channel, Err: res.Error})
		default:
			b.delivered.Add(1)
		}
	}

	if skipped != nil {
		errs = append(errs, skipped)
	}

	return errors.Join(errs...)
}

// ListenerCount returns the number of registrations on channel.
func (b *LocalBus[T]) ListenerCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.channels[channel])
}

// Stats returns current bus statistics.
func (b *LocalBus[T]) Stats() Stats {
	b.mu.RLock()
	channels := len(b.channels)
	listeners := 0
	for _, ls := range b.channels {
		listeners += len(ls)
	}
	b.mu.RUnlock()

	return Stats{
		Sent:      b.sent.Load(),
		Delivered: b.delivered.Load(),
		Failed:    b.failed.Load(),
		Panicked:  b.panicked.Load(),
		Channels:  channels,
		Listeners: listeners,
	}
}
