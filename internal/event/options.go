package event

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// BusOption configures a LocalBus.
type BusOption func(*busConfig)

type busConfig struct {
	logger zerolog.Logger

	// timeout bounds each listener call. Zero disables it.
	timeout time.Duration
}

func defaultBusConfig() busConfig {
	return busConfig{logger: zerolog.Nop()}
}

// WithBusLogger sets the logger listener failures are reported to.
func WithBusLogger(logger zerolog.Logger) BusOption {
	return func(c *busConfig) {
		c.logger = logger
	}
}

// WithListenerTimeout bounds the execution time of every listener call.
func WithListenerTimeout(timeout time.Duration) BusOption {
	return func(c *busConfig) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// TopicOption configures a TopicBus.
type TopicOption func(*topicBusConfig)

type topicBusConfig struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer
	namespace  string
	subsystem  string
}

func defaultTopicBusConfig() topicBusConfig {
	return topicBusConfig{
		logger:    zerolog.Nop(),
		namespace: "topicbus",
	}
}

// WithLogger sets the logger of the topic adapter.
func WithLogger(logger zerolog.Logger) TopicOption {
	return func(c *topicBusConfig) {
		c.logger = logger
	}
}

// WithRegisterer registers the adapter metrics with registerer. Without it
// no metrics are exported.
func WithRegisterer(registerer prometheus.Registerer) TopicOption {
	return func(c *topicBusConfig) {
		if registerer != nil {
			c.registerer = registerer
		}
	}
}

// WithNamespace sets the metric namespace, "topicbus" by default.
func WithNamespace(name string) TopicOption {
	return func(c *topicBusConfig) {
		if len(name) != 0 {
			c.namespace = name
		}
	}
}

// WithSubsystem sets the metric subsystem.
func WithSubsystem(name string) TopicOption {
	return func(c *topicBusConfig) {
		if len(name) != 0 {
			c.subsystem = name
		}
	}
}
