package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
)

func logLevelDecodeHookFunc(from reflect.Type, to reflect.Type, val any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(zerolog.Level(0)) {
		return val, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(val.(string)))) // nolint: forcetypeassert
	if err != nil {
		return nil, fmt.Errorf("unsupported log level %q", val)
	}

	return level, nil
}

func logFormatDecodeHookFunc(from reflect.Type, to reflect.Type, val any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(LogFormat(0)) {
		return val, nil
	}

	switch strings.ToLower(strings.TrimSpace(val.(string))) { // nolint: forcetypeassert
	case "", "text":
		return LogTextFormat, nil
	case "gelf":
		return LogGelfFormat, nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", val)
	}
}
