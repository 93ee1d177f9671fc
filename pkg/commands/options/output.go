package options

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions selects machine readable output.
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.JSON, "json", false,
		"Print tasks and errors as JSON.")
}

// HandleError reports err as {"error": "..."} on stdout when --json is set,
// so scripts always get a JSON document. Otherwise err is returned.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.JSON {
		return err
	}
	if encErr := json.NewEncoder(color.Output).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		return encErr
	}
	return nil
}
