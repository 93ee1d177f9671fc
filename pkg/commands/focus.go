package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/focus"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/timeutil"
)

func addFocus(topLevel *cobra.Command) {
	length := ""

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "run a focus countdown",
		Example: `
dayplan focus
dayplan focus --length 50m
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := timeutil.ParseSpan(length, schedule.DefaultFocus)
			if err != nil {
				return err
			}
			s := focus.Focus{Length: d, Out: cmd.OutOrStdout()}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&length, "length", "l", "", "Countdown length, e.g. 25m or 1h30m. Defaults to 25m.")

	topLevel.AddCommand(cmd)
}
