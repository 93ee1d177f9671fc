package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	undo := false

	cmd := &cobra.Command{
		Use:     "complete <task id>...",
		Aliases: []string{"completed", "done"},
		Short:   "mark tasks done",
		Example: `
dayplan complete 3f2a
dayplan complete --undo 3f2a
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
			s := complete.Complete{
				IDs:     args,
				Undo:    undo,
				Planner: e.Planner,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&undo, "undo", "u", false, "Mark the tasks open again.")

	topLevel.AddCommand(cmd)
}
