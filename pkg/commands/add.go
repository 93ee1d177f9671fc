package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "add a task from a line of text",
		Long: base.Wrap80(`Add a task. With a model configured the text is parsed for the title,
date, time, category and priority; otherwise the whole text is the title and
the task starts at the next full hour.`),
		Example: `
dayplan add 明天早上9点和团队开会
dayplan add --on 5/28 dentist
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the task text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			date := ""
			if on.OnString != "" {
				var err error
				if date, err = on.GetOn(time.Now()); err != nil {
					return err
				}
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return out.HandleError(err)
			}
			s := add.Add{
				Planner: e.Planner,
				Date:    date,
				Message: strings.Join(args, " "),
				ShowID:  io.ShowID,
				JSON:    out.JSON,
			}
			return out.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, out)

	topLevel.AddCommand(cmd)
}
