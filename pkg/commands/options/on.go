package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/timeutil"
)

// OnOptions selects the day a command works on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on=2024-05-21, --on=5/21, --on=tomorrow or --on=-1.`)
}

// GetOn resolves the flag against now. An unset flag is today.
func (o *OnOptions) GetOn(now time.Time) (string, error) {
	return timeutil.ResolveDay(o.OnString, now)
}
