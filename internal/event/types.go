package event

import (
	"context"

	"github.com/google/uuid"
)

// ListenerFunc handles a payload sent on channel.
type ListenerFunc[T any] func(ctx context.Context, channel string, payload T) error

// Listener is a registered callback. Listeners are compared by identity, so
// the value passed to On must be the one passed to RemoveListener.
type Listener[T any] struct {
	id string
	fn ListenerFunc[T]
}

// NewListener wraps fn into a listener with a unique id.
func NewListener[T any](fn ListenerFunc[T]) *Listener[T] {
	return &Listener[T]{
		id: uuid.NewString(),
		fn: fn,
	}
}

// ID returns the listener's unique id.
func (l *Listener[T]) ID() string {
	return l.id
}

// Handle invokes the listener.
func (l *Listener[T]) Handle(ctx context.Context, channel string, payload T) error {
	return l.fn(ctx, channel, payload)
}

// Bus delivers payloads to the listeners of a literal channel name. It does
// not interpret wildcards.
type Bus[T any] interface {
	// Send delivers payload to every listener registered on channel.
	Send(ctx context.Context, channel string, payload T) error

	// On registers l on channel.
	On(channel string, l *Listener[T]) error

	// RemoveListener removes one registration of l from channel.
	RemoveListener(channel string, l *Listener[T]) error

	// RemoveAllListeners removes every listener registered on channel.
	RemoveAllListeners(channel string) error
}

// Stats contains bus statistics.
type Stats struct {
	// Sent is the number of Send calls that reached at least one listener.
	Sent uint64

	// Delivered is the number of listener calls that returned nil.
	Delivered uint64

	// Failed is the number of listener calls that returned an error.
	Failed uint64

	// Panicked is the number of listener calls that panicked.
	Panicked uint64

	// Channels is the number of channels with at least one listener.
	Channels int

	// Listeners is the number of registrations over all channels.
	Listeners int
}
