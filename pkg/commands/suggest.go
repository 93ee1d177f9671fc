package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/suggest"
)

func addSuggest(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	summary := false

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "ask the assistant for advice on the day",
		Example: `
dayplan suggest
dayplan suggest --on tomorrow --summary
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.GetOn(time.Now())
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			s := suggest.Suggest{Planner: e.Planner, Date: date, Summary: summary}
			return s.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().BoolVar(&summary, "summary", false, "Print the day's summary first.")

	topLevel.AddCommand(cmd)
}
