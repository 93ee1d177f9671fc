package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/timeline"
)

// RefreshInterval is how often a watched timeline redraws.
const RefreshInterval = time.Minute

// Timeline prints the day view. With Watch it redraws every minute until ctx
// is cancelled.
type Timeline struct {
	Planner     *app.Planner
	Axis        timeline.Axis
	RowsPerHour int
	Watch       bool
	Now         func() time.Time
}

func (n *Timeline) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n *Timeline) axis() timeline.Axis {
	if n.Axis.EndHour == 0 {
		return timeline.DefaultAxis()
	}
	return n.Axis
}

func (n *Timeline) print(pp printers.PrettyPrint) {
	date := n.Planner.Selected()
	visible := n.Planner.Visible()
	pp.DayTitle(date, len(visible))
	rows := n.RowsPerHour
	if rows <= 0 {
		rows = 2
	}
	now := n.now()
	if !n.Planner.IsToday() {
		// The marker only belongs on today's axis.
		now = time.Time{}
	}
	pp.Timeline(n.axis().Place(visible), rows, now)
}

func (n *Timeline) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("timeline: no planner")
	}
	if err := n.Planner.Load(ctx); err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	n.print(pp)
	if !n.Watch {
		return nil
	}

	ticker := schedule.Every(ctx, RefreshInterval, func(time.Time) {
		if err := n.Planner.Load(ctx); err != nil {
			fmt.Fprintf(color.Error, "timeline: %v\n", err)
		}
		_, _ = fmt.Fprint(color.Output, "\033[H\033[2J")
		n.print(pp)
	})
	defer ticker.Stop()
	<-ctx.Done()
	return nil
}
