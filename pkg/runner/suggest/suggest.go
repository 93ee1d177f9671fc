// Package suggest prints the assistant's advice for a day.
package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/task"
)

type Suggest struct {
	Planner *app.Planner
	Date    string
	// Summary also prints the day's completion tally.
	Summary bool
}

func (n *Suggest) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("suggest: no planner")
	}
	if n.Date != "" {
		if err := n.Planner.SelectDate(n.Date); err != nil {
			return err
		}
	}
	if err := n.Planner.Load(ctx); err != nil {
		fmt.Fprintf(color.Error, "%s: %v\n", app.NoticeLoadFailed, err)
	}
	pp := printers.PrettyPrint{}
	if n.Summary {
		pp.Summary(task.Summarize(n.Planner.Visible()))
	}
	pp.Suggestion(n.Planner.Suggest(ctx))
	return nil
}
