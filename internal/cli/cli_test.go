package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var rabbitPatterns = []string{"-p", "*.orange.*", "-p", "*.*.rabbit", "-p", "lazy.#"}

type execution struct {
	stdout string
	stderr string
	code   int
}

func execute(t *testing.T, stdin string, args ...string) execution {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr,
		BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-02"})

	return execution{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()

	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommandSubcommands(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand(BuildInfo{})

	for _, name := range []string{"match", "tree", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{
		"config", "log-level", "log-format", "delimiter", "single", "multi", "listener-timeout",
	} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}

	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
}

func TestMatchOutput(t *testing.T) {
	t.Parallel()

	topics := []string{"quick.orange.rabbit", "lazy.orange.elephant", "quick.brown.fox"}

	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"match", "-o", format}, rabbitPatterns...)
			res := execute(t, "", append(args, topics...)...)

			require.Equal(t, ExitSuccess, res.code, res.stderr)
			newGoldie(t).Assert(t, "match_"+format, []byte(res.stdout))
		})
	}
}

func TestMatchYAMLOutput(t *testing.T) {
	t.Parallel()

	args := append([]string{"match", "--output", "YAML"}, rabbitPatterns...)
	res := execute(t, "", append(args, "lazy.pink.rabbit", "orange")...)
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	var results []MatchResult
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &results))

	assert.Equal(t, []MatchResult{
		{Topic: "lazy.pink.rabbit", Patterns: []string{"*.*.rabbit", "lazy.#"}},
		{Topic: "orange", Patterns: []string{}},
	}, results)
}

func TestMatchReadsTopicsFromStdin(t *testing.T) {
	t.Parallel()

	// GIVEN topics on stdin with blank lines around them
	stdin := "\nquick.orange.fox\n  \nlazy.brown.fox  \n"

	// WHEN no topic argument is given
	res := execute(t, stdin, append([]string{"match"}, rabbitPatterns...)...)

	// THEN every non blank line is matched
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "quick.orange.fox\n  *.orange.*\nlazy.brown.fox\n  lazy.#\n", res.stdout)
}

func TestMatchRepeatedPatternReportedOnce(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "match", "-p", "a.*", "-p", "a.*", "-p", "#", "a.b")

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "a.b\n  a.*\n  #\n", res.stdout)
}

func TestMatchWithConfigFile(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "match", "-c", "testdata/config.yaml", "-p", "sensors/kitchen/+", "--metrics",
		"sensors/kitchen/temperature", "sensors", "doors/front")

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, `sensors/kitchen/temperature
  sensors/+/temperature
  sensors/#
  sensors/kitchen/+
sensors
  sensors/#
doors/front
  (no match)
`, res.stdout)

	// the file sets the log level to debug and names the metrics
	assert.Contains(t, res.stderr, `"short_message":"Publishing"`)
	assert.Contains(t, res.stderr, "sensors_gateway_published_total 3\n")
	assert.Contains(t, res.stderr, "sensors_gateway_unmatched_total 1\n")
}

func TestMatchMetrics(t *testing.T) {
	t.Parallel()

	// GIVEN two patterns
	args := []string{"match", "--metrics", "--listener-timeout", "2s", "-p", "a.*", "-p", "#"}

	// WHEN two topics are published
	res := execute(t, "", append(args, "a.b", "c")...)

	// THEN the metrics follow the output on stderr
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "a.b\n  a.*\n  #\nc\n  #\n", res.stdout)

	for _, line := range []string{
		"topicbus_published_total 2\n",
		"topicbus_unmatched_total 0\n",
		`topicbus_deliveries_total{result="ok"} 3` + "\n",
		"topicbus_subscriptions 2\n",
	} {
		assert.Contains(t, res.stderr, line)
	}
}

func TestMatchWithoutMetricsFlag(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "match", "-p", "a", "a")

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Empty(t, res.stderr)
}

func TestMatchFlagsOverrideTokens(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "match", "--delimiter", ":", "--single", "?", "--multi", "**",
		"-p", "a:?", "-p", "**:c", "-p", "a.*", "a:c", "a.*")

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "a:c\n  a:?\n  **:c\na.*\n  a.*\n", res.stdout)
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		args    []string
		code    int
		message string
	}{
		"unknown flag": {
			args: []string{"match", "--nope"},
			code: ExitCommandError, message: "invalid flags",
		},
		"unknown output format": {
			args: []string{"match", "-o", "xml", "-p", "a", "a"},
			code: ExitCommandError, message: "invalid flags",
		},
		"no patterns": {
			args: []string{"match", "a.b"},
			code: ExitCommandError, message: "no patterns configured",
		},
		"malformed pattern": {
			args: []string{"match", "-p", "a..b", "a.b"},
			code: ExitCommandError, message: "invalid pattern",
		},
		"wildcard in topic": {
			args: []string{"match", "-p", "a.*", "a.*.c"},
			code: ExitCommandError, message: "invalid topic",
		},
		"missing config file": {
			args: []string{"match", "-c", "testdata/missing.yaml", "-p", "a", "a"},
			code: ExitCommandError, message: "failed to load configuration",
		},
		"identical wildcards": {
			args: []string{"tree", "--single", "#"},
			code: ExitCommandError, message: "failed to load configuration",
		},
		"empty delimiter": {
			args: []string{"tree", "--delimiter", ""},
			code: ExitCommandError, message: "failed to load configuration",
		},
		"negative listener timeout": {
			args: []string{"match", "--listener-timeout=-1s", "-p", "a", "a"},
			code: ExitCommandError, message: "failed to load configuration",
		},
		"unparsable listener timeout": {
			args: []string{"match", "--listener-timeout", "soon", "-p", "a", "a"},
			code: ExitCommandError, message: "invalid flags",
		},
		"unknown log level": {
			args: []string{"tree", "--log-level", "loud"},
			code: ExitCommandError, message: "failed to load configuration",
		},
		"tree with arguments": {
			args: []string{"tree", "a.b"},
			code: ExitFailure, message: "unknown command",
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			res := execute(t, "", tc.args...)

			assert.Equal(t, tc.code, res.code)
			assert.Empty(t, res.stdout)
			assert.True(t, strings.HasPrefix(res.stderr, "Error: "), res.stderr)
			assert.Contains(t, res.stderr, tc.message)
		})
	}
}

func TestTreeOutput(t *testing.T) {
	t.Parallel()

	args := append([]string{"tree", "-p", "lazy.#"}, rabbitPatterns...)
	res := execute(t, "", args...)

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	newGoldie(t).Assert(t, "tree", []byte(res.stdout))
}

func TestVersion(t *testing.T) {
	t.Parallel()

	// GIVEN a configuration file that cannot be loaded
	// WHEN the version is requested
	res := execute(t, "", "version", "-c", "testdata/missing.yaml")

	// THEN the configuration is not needed
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "topicbus 1.2.3 (commit abc1234, built 2026-01-02)\n", res.stdout)
}

func TestGetExitCode(t *testing.T) {
	t.Parallel()

	wrapped := WrapExitError(ExitCommandError, "failed to load configuration", errors.New("boom"))

	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.Join(errors.New("other"), wrapped)))
	assert.Equal(t, "failed to load configuration: boom", wrapped.Error())
	assert.Equal(t, "no patterns", NewExitError(ExitCommandError, "no patterns").Error())
}
