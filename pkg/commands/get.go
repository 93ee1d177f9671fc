package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	vo := &options.ViewOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "show the tasks of a day",
		Example: `
dayplan get
dayplan get --on tomorrow --view periods
dayplan get --view month --summary
dayplan get --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := vo.GetView()
			if err != nil {
				return err
			}
			date, err := on.GetOn(time.Now())
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return out.HandleError(err)
			}
			s := get.Get{
				Planner:     e.Planner,
				Date:        date,
				View:        view,
				ShowID:      io.ShowID,
				Summary:     vo.Summary,
				JSON:        out.JSON,
				Axis:        e.Config.Axis(),
				RowsPerHour: vo.RowsPerHour,
			}
			return out.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddViewArgs(cmd, vo)
	options.AddOutputArg(cmd, out)
	_ = cmd.RegisterFlagCompletionFunc("view", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return get.Views(), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addTimeline(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	vo := &options.ViewOptions{}
	watch := false

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "draw the day on a timeline",
		Example: `
dayplan timeline
dayplan timeline --watch --rows 4
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
			if err := e.Planner.SelectDate(date); err != nil {
				return err
			}
			s := get.Timeline{
				Planner:     e.Planner,
				Axis:        e.Config.Axis(),
				RowsPerHour: vo.RowsPerHour,
				Watch:       watch,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddRowsArg(cmd, vo)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Redraw every minute until interrupted.")

	topLevel.AddCommand(cmd)
}
