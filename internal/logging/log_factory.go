// Package logging creates the zerolog logger used throughout topicbus.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/topicbus/internal/config"
)

// NewLogger creates a logger writing to out. The text format is meant for
// humans; gelf emits one GELF 1.1 JSON document per line.
func NewLogger(conf config.Logging, out io.Writer) zerolog.Logger {
	if conf.Format == config.LogGelfFormat {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}

		return zerolog.New(newGelfWriter(out, hostname)).Level(conf.Level)
	}

	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.TimeFormat = time.RFC3339
	})

	return zerolog.New(console).Level(conf.Level).With().Timestamp().Logger()
}
