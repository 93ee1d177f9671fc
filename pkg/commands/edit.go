package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <task id>",
		Short: "change fields of a task",
		Example: `
dayplan edit 3f2a --start 10:00 --end 11:30
dayplan edit 3f2a --category health --priority 3
dayplan edit 3f2a --date 2024-05-28
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one task id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := eo.Patch(cmd)
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			s := edit.Edit{
				ID:      args[0],
				Patch:   patch,
				Planner: e.Planner,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddEditArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
