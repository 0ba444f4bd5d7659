package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/dshills/topicbus/internal/event"
	"github.com/dshills/topicbus/internal/event/topic"
)

// MatchOptions holds flags for the match command.
type MatchOptions struct {
	Patterns []string
	Output   outputFormat
	Metrics  bool
}

// NewMatchCommand creates the match command.
func NewMatchCommand(root *RootOptions) *cobra.Command {
	opts := &MatchOptions{Output: outputText}

	cmd := &cobra.Command{
		Use:   "match [topic...]",
		Short: "Print the patterns matching each topic",
		Long: `Subscribes every configured pattern and publishes each topic, printing
the patterns whose listeners received it.

Topics are read from stdin, one per line, when none are given as arguments.`,
		Example: `  topicbus match -p '*.orange.*' -p 'lazy.#' quick.orange.rabbit
  cat topics.txt | topicbus match -c topicbus.yaml -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := args
			if len(topics) == 0 {
				var err error
				if topics, err = readTopics(cmd.InOrStdin()); err != nil {
					return WrapExitError(ExitFailure, "failed to read topics", err)
				}
			}

			return runMatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root, opts, topics)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Patterns, "pattern", "p", nil, "subscription pattern, repeatable")
	cmd.Flags().VarP(&opts.Output, "output", "o", "output format (text|json|yaml)")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "write the bus metrics to stderr when done")

	return cmd
}

func runMatch(
	ctx context.Context, out, errOut io.Writer, root *RootOptions, opts *MatchOptions, topics []string,
) error {
	patterns := distinct(slices.Concat(root.Config.Patterns, opts.Patterns))
	if len(patterns) == 0 {
		return NewExitError(ExitCommandError, "no patterns configured")
	}

	registry := prometheus.NewRegistry()

	bus, err := event.NewTopicBus[string](
		event.NewLocalBus[string](
			event.WithBusLogger(root.Logger),
			event.WithListenerTimeout(root.Config.Bus.ListenerTimeout),
		),
		root.Config.Topic.Event(),
		event.WithLogger(root.Logger),
		event.WithRegisterer(registry),
		event.WithNamespace(root.Config.Metrics.Namespace),
		event.WithSubsystem(root.Config.Metrics.Subsystem),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid topic configuration", err)
	}

	// Publishing is synchronous, so the listener fills the current result.
	var current *MatchResult

	record := event.NewListener(func(_ context.Context, channel string, _ string) error {
		current.Patterns = append(current.Patterns, channel)
		return nil
	})

	for _, pattern := range patterns {
		if err := bus.Subscribe(pattern, record); err != nil {
			return WrapExitError(ExitCommandError, "invalid pattern", err)
		}
	}

	results := make([]MatchResult, 0, len(topics))

	for _, name := range topics {
		results = append(results, MatchResult{Topic: name, Patterns: []string{}})
		current = &results[len(results)-1]

		if err := bus.Publish(ctx, name, name); err != nil {
			if errors.Is(err, topic.ErrInvalidTopic) {
				return WrapExitError(ExitCommandError, "invalid topic", err)
			}

			return WrapExitError(ExitFailure, "failed to publish", err)
		}
	}

	if err := writeMatchResults(out, opts.Output, results); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}

	if opts.Metrics {
		if err := writeMetrics(errOut, registry); err != nil {
			return WrapExitError(ExitFailure, "failed to write metrics", err)
		}
	}

	return nil
}

// writeMetrics writes everything gathered by g in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

// readTopics returns the non blank lines of r.
func readTopics(r io.Reader) ([]string, error) {
	var topics []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			topics = append(topics, line)
		}
	}

	return topics, scanner.Err()
}

// distinct drops repeated patterns, keeping the first occurrence.
func distinct(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	result := make([]string, 0, len(patterns))

	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}
		result = append(result, p)
	}

	return result
}
