package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load builds the configuration. Sources are applied in this order, later
// ones overriding earlier ones: Default, the config file, environment
// variables, overrides.
//
// Environment variables use the prefix followed by the upper cased koanf
// path with "_" as separator. A "_" inside a key is written as "__", e.g.
// TOPICBUS_TOPIC_IGNORE__MISSING=true. List values are comma separated.
func Load(options ...Option) (*Config, error) {
	o := opts{envPrefix: defaultEnvPrefix}
	for _, opt := range options {
		opt(&o)
	}

	config := Default()

	parser := koanf.New(".")
	if err := parser.Load(structs.Provider(config, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("%w: failed to load defaults: %w", ErrConfiguration, err)
	}

	if len(o.configFile) != 0 {
		raw, err := os.ReadFile(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		if err = parser.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: failed to load yaml config from %s: %w", ErrConfiguration, o.configFile, err)
		}
	}

	if err := parser.Load(envProvider(o.envPrefix), nil); err != nil {
		return nil, fmt.Errorf("%w: failed to parse environment variables: %w", ErrConfiguration, err)
	}

	if len(o.overrides) != 0 {
		if err := parser.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("%w: failed to apply overrides: %w", ErrConfiguration, err)
		}
	}

	err := parser.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				logLevelDecodeHookFunc,
				logFormatDecodeHookFunc,
			),
			Result:           &config,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err = Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func envProvider(prefix string) *env.Env {
	return env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key, val string) (string, any) {
			tmp := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, prefix)), "__", `\:\`)
			tmp = strings.ReplaceAll(tmp, "_", ".")

			return strings.ReplaceAll(tmp, `\:\`, "_"), val
		},
	})
}

// nolint: gochecknoglobals
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateTopicConfig, TopicConfig{})

	return v
}

// validateTopicConfig rejects wildcard tokens containing the delimiter.
func validateTopicConfig(sl validator.StructLevel) {
	tc := sl.Current().Interface().(TopicConfig) // nolint: forcetypeassert
	if len(tc.Delimiter) == 0 {
		return
	}

	if strings.Contains(tc.SingleWildcard, tc.Delimiter) {
		sl.ReportError(tc.SingleWildcard, "SingleWildcard", "single_wildcard", "excludes_delimiter", "")
	}

	if strings.Contains(tc.MultiWildcard, tc.Delimiter) {
		sl.ReportError(tc.MultiWildcard, "MultiWildcard", "multi_wildcard", "excludes_delimiter", "")
	}
}

// Validate checks config against its validation rules.
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}
