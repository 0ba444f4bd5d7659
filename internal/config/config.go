// Package config loads the topicbus configuration from struct defaults, an
// optional YAML file, environment variables and explicit overrides, in that
// order, and validates the result.
package config

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/topicbus/internal/event"
	"github.com/dshills/topicbus/internal/event/topic"
)

// Config is the complete topicbus configuration.
type Config struct {
	Topic    TopicConfig   `koanf:"topic"`
	Bus      BusConfig     `koanf:"bus"`
	Metrics  MetricsConfig `koanf:"metrics"`
	Log      Logging       `koanf:"log"`
	Patterns []string      `koanf:"patterns" validate:"dive,required"`
}

// BusConfig configures listener delivery.
type BusConfig struct {
	// ListenerTimeout bounds each listener call. Zero disables it.
	ListenerTimeout time.Duration `koanf:"listener_timeout,string" validate:"gte=0"`
}

// MetricsConfig names the exported metrics.
type MetricsConfig struct {
	Namespace string `koanf:"namespace" validate:"required"`
	Subsystem string `koanf:"subsystem"`
}

// TopicConfig configures topic splitting and wildcard tokens.
type TopicConfig struct {
	Delimiter      string `koanf:"delimiter"       validate:"required"`
	SingleWildcard string `koanf:"single_wildcard" validate:"required,nefield=MultiWildcard"`
	MultiWildcard  string `koanf:"multi_wildcard"  validate:"required"`
	IgnoreMissing  bool   `koanf:"ignore_missing"`
}

// Event converts the configuration into the adapter's TopicConfig.
func (c TopicConfig) Event() event.TopicConfig {
	return event.TopicConfig{
		Delimiter:      c.Delimiter,
		SingleWildcard: c.SingleWildcard,
		MultiWildcard:  c.MultiWildcard,
		IgnoreMissing:  c.IgnoreMissing,
	}
}

// Default returns the configuration used when nothing else is set. Unlike
// event.TopicConfig, the delimiter defaults to ".".
func Default() Config {
	return Config{
		Topic: TopicConfig{
			Delimiter:      ".",
			SingleWildcard: topic.DefaultSingleWildcard,
			MultiWildcard:  topic.DefaultMultiWildcard,
		},
		Metrics: MetricsConfig{Namespace: "topicbus"},
		Log: Logging{
			Format: LogTextFormat,
			Level:  zerolog.WarnLevel,
		},
	}
}
