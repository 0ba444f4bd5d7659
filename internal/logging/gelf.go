package logging

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const gelfVersion = "1.1"

// gelfWriter rewrites the JSON events of a zerolog logger into GELF messages.
// Fields other than the message and level become additional fields, which
// GELF requires to start with "_".
type gelfWriter struct {
	out  io.Writer
	host string
	now  func() time.Time
}

func newGelfWriter(out io.Writer, host string) *gelfWriter {
	return &gelfWriter{out: out, host: host, now: time.Now}
}

func (w *gelfWriter) Write(p []byte) (int, error) {
	var event map[string]any

	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()

	if err := dec.Decode(&event); err != nil {
		return 0, err
	}

	msg := map[string]any{
		"version":       gelfVersion,
		"host":          w.host,
		"timestamp":     float64(w.now().UnixMilli()) / 1000,
		"short_message": "",
	}

	for key, value := range event {
		switch key {
		case zerolog.MessageFieldName:
			msg["short_message"] = value
		case zerolog.LevelFieldName:
			name, _ := value.(string)
			if level, err := zerolog.ParseLevel(name); err == nil && level != zerolog.NoLevel {
				msg["level"] = toSeverity(level)
			}

			msg["_level_name"] = strings.ToUpper(name)
		case zerolog.TimestampFieldName:
			// replaced by the GELF timestamp
		default:
			if !strings.HasPrefix(key, "_") {
				key = "_" + key
			}

			msg[key] = value
		}
	}

	encoded, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	if _, err = w.out.Write(append(encoded, '\n')); err != nil {
		return 0, err
	}

	return len(p), nil
}
