package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dshills/topicbus/internal/event/topic"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand(root *RootOptions) *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the pattern tree with registration counts",
		Long: `Adds every configured pattern to a topic tree and prints one node per
line, indented by depth, with the number of registrations passing through it.
Repeated patterns are counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := root.Config.Topic.Event()

			tree, err := topic.NewTree(conf.Delimiter, conf.TreeOptions()...)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid topic configuration", err)
			}

			for _, p := range slices.Concat(root.Config.Patterns, patterns) {
				if err := tree.Add(p); err != nil {
					return WrapExitError(ExitCommandError, "invalid pattern", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tree.String())
			fmt.Fprintf(out, "%d registrations, %d nodes (delimiter %q, wildcards %q %q)\n",
				tree.Size(), tree.NodeCount(), tree.Delimiter(), tree.SingleWildcard(), tree.MultiWildcard())

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "subscription pattern, repeatable")

	return cmd
}
