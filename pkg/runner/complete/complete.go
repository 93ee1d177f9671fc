// Package complete provides the runner logic for marking tasks complete.
package complete

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
)

// Complete marks tasks completed, or open again with Undo.
type Complete struct {
	IDs     []string
	Undo    bool
	Planner *app.Planner
}

// Do flips each task whose state differs from the target. Unknown ids are
// reported and skipped.
func (n *Complete) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not complete, no planner")
	}
	if len(n.IDs) == 0 {
		return errors.New("complete: no task id")
	}
	if err := n.Planner.Load(ctx); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	var failed error
	for _, id := range n.IDs {
		t, ok := n.Planner.Cache.Get(id)
		if !ok {
			fmt.Fprintf(color.Error, "complete: no task %q\n", id)
			continue
		}
		if t.Completed == !n.Undo {
			continue
		}
		if err := n.Planner.Toggle(ctx, id); err != nil {
			failed = err
			continue
		}
		t, _ = n.Planner.Cache.Get(id)
		pp.Tasks(t)
	}
	return failed
}
