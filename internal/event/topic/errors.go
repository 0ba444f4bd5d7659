package topic

import (
	"errors"
	"fmt"
)

// Sentinel errors for the topic tree.
var (
	// ErrInvalidTopic is returned when a topic or pattern is empty or malformed,
	// or when a published topic contains a wildcard token.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNotFound is returned when a removal targets a pattern that is not
	// registered.
	ErrNotFound = errors.New("topic not found")

	// ErrInvalidConfig is returned by NewTree for an unusable delimiter or
	// wildcard configuration.
	ErrInvalidConfig = errors.New("invalid topic tree configuration")
)

// ValidationError describes why a topic or pattern was rejected.
type ValidationError struct {
	// Topic is the raw input that failed validation.
	Topic string

	// Reason describes the failed rule.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid topic %q: %s", e.Topic, e.Reason)
}

// Is allows errors.Is to match ValidationError with ErrInvalidTopic.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTopic
}

// NotFoundError is returned by Remove and RemoveAll when the exact pattern
// holds no registration.
type NotFoundError struct {
	// Pattern is the pattern that was to be removed.
	Pattern string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("couldn't find topic %q", e.Pattern)
}

// Is allows errors.Is to match NotFoundError with ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
