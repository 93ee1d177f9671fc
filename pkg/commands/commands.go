package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/env"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "dayplan",
		Short: base.Wrap80("Plan the day on a timeline, with natural language quick add and an evening journal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addTimeline(topLevel)
	addAdd(topLevel)
	addComplete(topLevel)
	addDelete(topLevel)
	addEdit(topLevel)
	addSuggest(topLevel)
	addJournal(topLevel)
	addFocus(topLevel)
	addConfig(topLevel)
	addVersion(topLevel)
}

func loadEnv(cmd *cobra.Command) (*env.Env, error) {
	return env.Load(cmd.Context())
}
