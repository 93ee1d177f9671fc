package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/timeline"
)

const gutter = "     "

// Timeline prints the day view: hour labels down the left and each placed
// task as a bar covering its rows. The current time is marked when it falls
// on the axis.
func (pp *PrettyPrint) Timeline(l timeline.Layout, rowsPerHour int, now time.Time) {
	out := pp.out()
	g := timeline.Rasterize(l, rowsPerHour, now)

	faint := color.New(color.Faint)
	mark := color.New(color.FgRed, color.Bold)
	done := color.New(color.Faint, color.CrossedOut)

	for _, r := range g.Rows {
		label := gutter
		if r.Label != "" {
			label = r.Label
		}
		_, _ = faint.Fprint(out, label)

		switch {
		case r.Block < 0:
			_, _ = faint.Fprint(out, " ┆")
		case r.Head:
			b := l.Blocks[r.Block]
			c := color.New(categoryColor[b.Task.Category], color.Bold)
			_, _ = c.Fprint(out, " ┃ ")
			text := fmt.Sprintf("%s-%s %s", b.Task.StartTime, b.Task.EndTime, b.Task.Title)
			if b.Task.Completed {
				_, _ = done.Fprint(out, text)
			} else if timeline.Ongoing(b.Task, now) {
				_, _ = c.Fprint(out, text)
			} else {
				_, _ = fmt.Fprint(out, text)
			}
			_, _ = faint.Fprintf(out, " %s %s", b.Task.Category, b.Task.Priority.Stars())
		default:
			b := l.Blocks[r.Block]
			_, _ = color.New(categoryColor[b.Task.Category]).Fprint(out, " ┃")
		}
		if r.Now {
			_, _ = mark.Fprintf(out, " ◀ %s", now.Format("15:04"))
		}
		_, _ = fmt.Fprintln(out)
	}

	if len(l.Skipped) > 0 {
		_, _ = faint.Fprintf(out, "%s %d task(s) with unreadable times:\n", strings.TrimSpace(gutter), len(l.Skipped))
		pp.Tasks(l.Skipped...)
	}
}
