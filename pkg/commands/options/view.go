package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/get"
)

// ViewOptions
type ViewOptions struct {
	View        string
	Summary     bool
	RowsPerHour int
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVar(&o.View, "view", string(get.ViewList),
		fmt.Sprintf("How to show the day. One of %s.", strings.Join(get.Views(), ", ")))
	cmd.Flags().BoolVar(&o.Summary, "summary", false,
		"Also print the completion rate and category counts.")
	AddRowsArg(cmd, o)
}

func AddRowsArg(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().IntVar(&o.RowsPerHour, "rows", 2,
		"Timeline rows per hour.")
}

// GetView validates the --view flag.
func (o *ViewOptions) GetView() (get.View, error) {
	v := strings.ToLower(strings.TrimSpace(o.View))
	for _, known := range get.Views() {
		if v == known {
			return get.View(v), nil
		}
	}
	return "", fmt.Errorf("unknown view %q, expected one of %s", o.View, strings.Join(get.Views(), ", "))
}
