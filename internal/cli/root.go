// Package cli implements the topicbus command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/topicbus/internal/config"
	"github.com/dshills/topicbus/internal/logging"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// RootOptions holds global flags and the state they produce.
type RootOptions struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Delimiter  string
	Single     string
	Multi      string

	ListenerTimeout time.Duration

	// Set before any subcommand runs.
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCommand creates the root command for the topicbus CLI.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &RootOptions{Logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "topicbus",
		Short: "Match topics against wildcard subscription patterns",
		Long: `topicbus matches concrete topics such as "quick.orange.rabbit" against
subscription patterns using "*" for exactly one word and "#" for zero or more
words.

Patterns come from the configuration file, the TOPICBUS_PATTERNS environment
variable and --pattern flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "path to a YAML configuration file")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	flags.StringVar(&opts.LogFormat, "log-format", "", "log format (text|gelf)")
	flags.StringVar(&opts.Delimiter, "delimiter", "", "word delimiter")
	flags.StringVar(&opts.Single, "single", "", "single word wildcard")
	flags.StringVar(&opts.Multi, "multi", "", "multi word wildcard")
	flags.DurationVar(&opts.ListenerTimeout, "listener-timeout", 0, "bound on each listener call, 0 disables it")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewVersionCommand(info))

	return cmd
}

// load reads the configuration. Flags that were set explicitly override it.
func (o *RootOptions) load(cmd *cobra.Command) error {
	loadOpts := []config.Option{config.WithConfigFile(o.ConfigFile)}

	flags := cmd.Flags()
	override := func(flag, key, value string) {
		if flags.Changed(flag) {
			loadOpts = append(loadOpts, config.WithOverride(key, value))
		}
	}

	override("log-level", "log.level", o.LogLevel)
	override("log-format", "log.format", o.LogFormat)
	override("delimiter", "topic.delimiter", o.Delimiter)
	override("single", "topic.single_wildcard", o.Single)
	override("multi", "topic.multi_wildcard", o.Multi)
	override("listener-timeout", "bus.listener_timeout", o.ListenerTimeout.String())

	conf, err := config.Load(loadOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	o.Config = conf
	o.Logger = logging.NewLogger(conf.Log, cmd.ErrOrStderr())

	o.Logger.Debug().
		Str("_delimiter", conf.Topic.Delimiter).
		Int("_patterns", len(conf.Patterns)).
		Msg("Configuration loaded")

	return nil
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, info BuildInfo) int {
	cmd := NewRootCommand(info)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	return GetExitCode(err)
}

// skipConfig replaces the root PersistentPreRunE for commands that do not
// need configuration.
func skipConfig(*cobra.Command, []string) error { return nil }
