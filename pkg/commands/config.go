package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/config"
)

func addConfig(topLevel *cobra.Command) {
	c := &config.Config{}
	out := &options.OutputOptions{}
	dark := false

	var providers []string
	for _, p := range ai.AllProviders() {
		providers = append(providers, string(p))
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "show or change the " + config.Title + " settings",
		Example: `
dayplan config
dayplan config --provider deepseek --key sk-...
dayplan config --dark
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return out.HandleError(err)
			}
			c.Settings = e.State
			c.JSON = out.JSON
			if cmd.Flags().Changed("dark") {
				c.Dark = &dark
			}
			return out.HandleError(c.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&c.Provider, "provider", "", "Model provider, one of "+strings.Join(providers, ", ")+".")
	cmd.Flags().StringVar(&c.BaseURL, "base-url", "", "OpenAI compatible endpoint.")
	cmd.Flags().StringVar(&c.Model, "model", "", "Model id.")
	cmd.Flags().StringVar(&c.Key, "key", "", "API key.")
	cmd.Flags().BoolVar(&dark, "dark", false, "Use the dark palette in the ui; --dark=false switches back.")
	options.AddOutputArg(cmd, out)
	_ = cmd.RegisterFlagCompletionFunc("provider", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return providers, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
