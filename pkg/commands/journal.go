package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/journal"
	"tableflip.dev/dayplan/pkg/task"
)

func addJournal(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	mood := ""
	show := false
	force := false

	cmd := &cobra.Command{
		Use:   "journal [reflection]",
		Short: journal.Title,
		Long: base.Wrap80(`Record the day's mood and a short reflection. It opens in the evening,
once something on today's list is done. With a Gemini key an illustration of
the day is saved alongside.`),
		Example: `
dayplan journal --mood happy 第一次跑完五公里
dayplan journal --show --on yesterday
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := task.ParseMood(mood)
			if err != nil {
				return err
			}
			date, err := on.GetOn(time.Now())
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			s := journal.Journal{
				Planner:    e.Planner,
				Date:       date,
				Mood:       m,
				Reflection: strings.Join(args, " "),
				Show:       show,
				Force:      force,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().StringVarP(&mood, "mood", "m", "neutral", "One of happy, neutral, sad or the emoji.")
	cmd.Flags().BoolVar(&show, "show", false, "Print the saved record instead of writing one.")
	cmd.Flags().BoolVar(&force, "force", false, "Write even before the evening.")

	topLevel.AddCommand(cmd)
}
