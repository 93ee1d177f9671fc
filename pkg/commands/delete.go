package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	yes := false

	cmd := &cobra.Command{
		Use:     "delete <task id>...",
		Aliases: []string{"rm", "remove"},
		Short:   "delete tasks after confirming",
		Example: `
dayplan delete 3f2a
dayplan delete --yes 3f2a 9c1d
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			s := remove.Remove{
				IDs:     args,
				Planner: e.Planner,
				Yes:     yes,
				In:      cmd.InOrStdin(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation.")

	topLevel.AddCommand(cmd)
}
