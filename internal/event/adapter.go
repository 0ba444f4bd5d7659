package event

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/topicbus/internal/event/topic"
)

// TopicConfig configures the pattern matching of a TopicBus.
type TopicConfig struct {
	// Delimiter separates the words of a topic. Required.
	Delimiter string

	// SingleWildcard matches exactly one word. Defaults to "*".
	SingleWildcard string

	// MultiWildcard matches zero or more words. Defaults to "#".
	MultiWildcard string

	// IgnoreMissing turns unsubscribing an unknown pattern into a no-op.
	IgnoreMissing bool
}

// TreeOptions returns the options of the topic tree built from c.
func (c TopicConfig) TreeOptions() []topic.Option {
	opts := []topic.Option{topic.WithIgnoreMissing(c.IgnoreMissing)}
	if c.SingleWildcard != "" {
		opts = append(opts, topic.WithSingleWildcard(c.SingleWildcard))
	}
	if c.MultiWildcard != "" {
		opts = append(opts, topic.WithMultiWildcard(c.MultiWildcard))
	}
	return opts
}

// TopicBus adds wildcard subscriptions to a Bus that only knows literal
// channel names.
//
// Every subscription pattern is used verbatim as a bus channel. Publishing a
// topic looks up the registered patterns matching it and sends the payload on
// each of their channels, so a listener subscribed to "*.orange.*" receives
// "quick.orange.rabbit".
//
// TopicBus is safe for concurrent use. Listeners run after the pattern lookup
// released its lock and may subscribe or unsubscribe.
type TopicBus[T any] struct {
	mu   sync.RWMutex
	tree *topic.Tree

	bus           Bus[T]
	ignoreMissing bool
	logger        zerolog.Logger
	metrics       *topicMetrics
}

// NewTopicBus creates an adapter in front of bus.
func NewTopicBus[T any](bus Bus[T], cfg TopicConfig, opts ...TopicOption) (*TopicBus[T], error) {
	if bus == nil {
		return nil, ErrNilBus
	}

	tree, err := topic.NewTree(cfg.Delimiter, cfg.TreeOptions()...)
	if err != nil {
		return nil, err
	}

	config := defaultTopicBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &TopicBus[T]{
		tree:          tree,
		bus:           bus,
		ignoreMissing: cfg.IgnoreMissing,
		logger:        config.logger,
		metrics:       newTopicMetrics(config),
	}, nil
}

// Subscribe registers l for every topic matching pattern.
func (a *TopicBus[T]) Subscribe(pattern string, l *Listener[T]) error {
	if l == nil {
		return ErrNilListener
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.tree.Add(pattern); err != nil {
		return err
	}

	if err := a.bus.On(pattern, l); err != nil {
		// the registration was just added, so it can be taken back
		_ = a.tree.Remove(pattern)

		return err
	}

	a.metrics.subscriptions.Set(float64(a.tree.Size()))
	a.logger.Debug().
		Str("_pattern", pattern).
		Str("_listener", l.ID()).
		Msg("Subscribed")

	return nil
}

// SubscribeFunc wraps fn into a listener, subscribes it and returns the
// listener for a later Unsubscribe.
func (a *TopicBus[T]) SubscribeFunc(pattern string, fn ListenerFunc[T]) (*Listener[T], error) {
	l := NewListener(fn)
	if err := a.Subscribe(pattern, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Publish sends payload on the channel of every pattern matching the concrete
// topic. The listeners of a pattern receive the pattern as channel. Errors
// from the individual sends are joined.
func (a *TopicBus[T]) Publish(ctx context.Context, topicName string, payload T) error {
	patterns, err := a.Matches(topicName)
	if err != nil {
		return err
	}

	a.metrics.published.Inc()
	if len(patterns) == 0 {
		a.metrics.unmatched.Inc()
	}

	a.logger.Debug().
		Str("_topic", topicName).
		Strs("_patterns", patterns).
		Msg("Publishing")

	var errs []error

	for _, pattern := range patterns {
		if err := a.bus.Send(ctx, pattern, payload); err != nil {
			a.metrics.deliveries.WithLabelValues(resultError).Inc()
			errs = append(errs, err)

			continue
		}

		a.metrics.deliveries.WithLabelValues(resultOK).Inc()
	}

	return errors.Join(errs...)
}

// Unsubscribe removes one registration of pattern and the listener l from
// the pattern's channel. pattern must be spelled exactly as subscribed. If
// the bus fails to remove l, the registration is kept.
func (a *TopicBus[T]) Unsubscribe(pattern string, l *Listener[T]) error {
	if l == nil {
		return ErrNilListener
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.tree.Remove(pattern); err != nil {
		return err
	}

	err := a.bus.RemoveListener(pattern, l)
	if err != nil && !(a.ignoreMissing && errors.Is(err, ErrListenerNotFound)) {
		// the listener is still on the bus, so its pattern has to keep
		// routing to it
		_ = a.tree.Add(pattern)

		return err
	}

	a.metrics.subscriptions.Set(float64(a.tree.Size()))
	a.logger.Debug().
		Str("_pattern", pattern).
		Str("_listener", l.ID()).
		Msg("Unsubscribed")

	return nil
}

// UnsubscribeAll removes every registration of pattern together with all
// listeners of its channel and returns the number of registrations removed.
func (a *TopicBus[T]) UnsubscribeAll(pattern string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed, err := a.tree.RemoveAll(pattern)
	if err != nil {
		return 0, err
	}

	if err = a.bus.RemoveAllListeners(pattern); err != nil {
		for range removed {
			_ = a.tree.Add(pattern)
		}

		return 0, err
	}

	a.metrics.subscriptions.Set(float64(a.tree.Size()))
	a.logger.Debug().
		Str("_pattern", pattern).
		Int("_removed", removed).
		Msg("Unsubscribed all")

	return removed, nil
}

// Matches returns the registered patterns matching the concrete topic
// without delivering anything.
func (a *TopicBus[T]) Matches(topicName string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.tree.Match(topicName)
}

// Patterns returns the registered patterns.
func (a *TopicBus[T]) Patterns() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.tree.Patterns()
}

// Size returns the number of pattern registrations.
func (a *TopicBus[T]) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.tree.Size()
}
