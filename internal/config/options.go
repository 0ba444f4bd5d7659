package config

import "strings"

const defaultEnvPrefix = "TOPICBUS_"

type opts struct {
	configFile string
	envPrefix  string
	overrides  map[string]any
}

type Option func(*opts)

// WithConfigFile loads the given YAML file. The file must exist.
func WithConfigFile(file string) Option {
	return func(o *opts) {
		configFile := strings.TrimSpace(file)
		if len(configFile) != 0 {
			o.configFile = configFile
		}
	}
}

// WithEnvPrefix replaces the TOPICBUS_ prefix of the environment variables
// taken into account.
func WithEnvPrefix(prefix string) Option {
	return func(o *opts) {
		if len(prefix) != 0 {
			o.envPrefix = prefix
		}
	}
}

// WithOverride sets key, given as dotted koanf path like "topic.delimiter",
// after every other source was loaded.
func WithOverride(key string, value any) Option {
	return func(o *opts) {
		if len(key) == 0 {
			return
		}

		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}

		o.overrides[key] = value
	}
}
