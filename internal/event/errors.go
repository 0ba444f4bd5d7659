package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event bus.
var (
	// ErrNilListener is returned when a nil listener is provided.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrInvalidChannel is returned for an empty channel name.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrListenerNotFound is returned when removing a listener that is not
	// registered on the channel.
	ErrListenerNotFound = errors.New("listener not found")

	// ErrListenerPanic is matched by PanicError.
	ErrListenerPanic = errors.New("listener panicked")

	// ErrNilBus is returned when the topic adapter is created without a bus.
	ErrNilBus = errors.New("bus cannot be nil")
)

// ListenerError wraps an error returned by a listener.
type ListenerError struct {
	// ListenerID is the id of the listener that failed.
	ListenerID string

	// Channel is the channel the payload was sent on.
	Channel string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %s on channel %q: %v", e.ListenerID, e.Channel, e.Err)
}

// Unwrap returns the underlying error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic value recovered from a listener.
type PanicError struct {
	ListenerID string
	Channel    string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("listener %s on channel %q panicked: %v", e.ListenerID, e.Channel, e.Value)
}

// Is allows errors.Is to match PanicError with ErrListenerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrListenerPanic
}
