// Package edit changes fields of an existing task.
package edit

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/task"
)

type Edit struct {
	ID      string
	Patch   task.Patch
	Planner *app.Planner
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("edit: no planner")
	}
	if n.Patch.Empty() {
		return errors.New("edit: nothing to change")
	}
	if err := validate(n.Patch); err != nil {
		return err
	}
	if err := n.Planner.Load(ctx); err != nil {
		return err
	}
	if _, ok := n.Planner.Cache.Get(n.ID); !ok {
		return fmt.Errorf("edit: no task %q", n.ID)
	}
	if err := n.Planner.Edit(ctx, n.ID, n.Patch); err != nil {
		return err
	}
	t, _ := n.Planner.Cache.Get(n.ID)
	pp := printers.PrettyPrint{ShowID: true}
	pp.Tasks(t)
	return nil
}

func validate(p task.Patch) error {
	for _, v := range []*string{p.StartTime, p.EndTime} {
		if v == nil {
			continue
		}
		if _, err := task.ParseClock(*v); err != nil {
			return fmt.Errorf("edit: %w", err)
		}
	}
	if p.Date != nil {
		if _, err := task.ParseDate(*p.Date); err != nil {
			return fmt.Errorf("edit: invalid date %q", *p.Date)
		}
	}
	return nil
}
