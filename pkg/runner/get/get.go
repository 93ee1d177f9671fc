// Package get prints the tasks of a day, week or month.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeline"
)

// View selects the layout printed by Get.
type View string

const (
	ViewList     View = "list"
	ViewPeriods  View = "periods"
	ViewTimeline View = "timeline"
	ViewWeek     View = "week"
	ViewMonth    View = "month"
)

// Views lists the accepted values of --view.
func Views() []string {
	return []string{string(ViewList), string(ViewPeriods), string(ViewTimeline), string(ViewWeek), string(ViewMonth)}
}

type Get struct {
	Planner *app.Planner
	// Date is the day to show, already resolved. Empty means today.
	Date        string
	View        View
	ShowID      bool
	Summary     bool
	JSON        bool
	Axis        timeline.Axis
	RowsPerHour int
	Now         func() time.Time
}

func (n *Get) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("get: no planner")
	}
	if err := n.Planner.Load(ctx); err != nil {
		return err
	}
	if n.Date != "" {
		if err := n.Planner.SelectDate(n.Date); err != nil {
			return err
		}
	}
	date := n.Planner.Selected()
	visible := n.Planner.Visible()
	task.SortByStart(visible)

	if n.JSON {
		b, err := json.MarshalIndent(visible, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	switch n.View {
	case ViewWeek:
		pp.Week(date, n.Planner.Cache.Snapshot())
	case ViewMonth:
		pp.Month(date, n.Planner.Cache.Snapshot())
		pp.DayTitle(date, len(visible))
		pp.Tasks(visible...)
	case ViewPeriods:
		pp.DayTitle(date, len(visible))
		pp.Periods(task.Periods(visible))
	case ViewTimeline:
		t := Timeline{Planner: n.Planner, Axis: n.Axis, RowsPerHour: n.RowsPerHour, Now: n.Now}
		t.print(pp)
	default:
		pp.DayTitle(date, len(visible))
		pp.Tasks(visible...)
	}
	if n.Summary {
		pp.Summary(task.Summarize(visible))
	}
	return nil
}
