package config

import "github.com/rs/zerolog"

type LogFormat int

const (
	LogTextFormat LogFormat = iota
	LogGelfFormat
)

func (f LogFormat) String() string {
	if f == LogGelfFormat {
		return "gelf"
	}

	return "text"
}

type Logging struct {
	Format LogFormat     `koanf:"format,string"`
	Level  zerolog.Level `koanf:"level,string"`
}
