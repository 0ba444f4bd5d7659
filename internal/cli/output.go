package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// MatchResult lists the patterns matching one topic.
type MatchResult struct {
	Topic    string   `json:"topic"    yaml:"topic"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []outputFormat{outputText, outputJSON, outputYAML}

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(value string) error {
	for _, valid := range ValidOutputs {
		if strings.EqualFold(value, string(valid)) {
			*f = valid
			return nil
		}
	}

	return fmt.Errorf("must be one of %v", ValidOutputs)
}

func (f *outputFormat) Type() string { return "format" }

var _ pflag.Value = (*outputFormat)(nil)

func writeMatchResults(w io.Writer, format outputFormat, results []MatchResult) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(results)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(results); err != nil {
			return err
		}

		return enc.Close()
	default:
		for _, r := range results {
			fmt.Fprintln(w, r.Topic)

			if len(r.Patterns) == 0 {
				fmt.Fprintln(w, "  (no match)")
			}

			for _, p := range r.Patterns {
				fmt.Fprintln(w, "  "+p)
			}
		}

		return nil
	}
}
