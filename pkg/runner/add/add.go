// Package add creates a task from a line of free text.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/task"
)

type Add struct {
	Planner *app.Planner
	// Date is the day the text is read relative to. Empty means today.
	Date    string
	Message string
	ShowID  bool
	JSON    bool
}

func (n *Add) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("add: no planner")
	}
	if n.Date != "" {
		if err := n.Planner.SelectDate(n.Date); err != nil {
			return err
		}
	}
	if err := n.Planner.Load(ctx); err != nil {
		// The create can still succeed; the listing below is just shorter.
		fmt.Fprintf(color.Error, "add: %v\n", err)
	}
	created, err := n.Planner.QuickAdd(ctx, n.Message)
	if err != nil {
		return err
	}

	if n.JSON {
		b, err := json.Marshal(created)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	on := task.ForDate(n.Planner.Cache.Snapshot(), created.Date)
	task.SortByStart(on)
	pp.DayTitle(created.Date, len(on))
	pp.Tasks(on...)
	return nil
}
