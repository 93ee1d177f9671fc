package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive day planner",
		Example: `
dayplan ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui needs a terminal, try dayplan get")
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			i := ui.UI{Env: e}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
