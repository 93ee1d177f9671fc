// Package focus runs the focus countdown in the terminal.
package focus

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/schedule"
)

type Focus struct {
	Length time.Duration
	// Out defaults to color.Output.
	Out io.Writer
	// Interval is the tick period; one second unless set.
	Interval time.Duration
}

// Do counts down until the timer finishes or ctx is cancelled.
func (n *Focus) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	interval := n.Interval
	if interval <= 0 {
		interval = time.Second
	}
	f := schedule.NewFocus(n.Length)
	f.Toggle()

	bold := color.New(color.Bold)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_, _ = bold.Fprintf(out, "\r专注 %s", f)
	ticker := schedule.Every(ctx, interval, func(time.Time) {
		finished := f.Tick()
		_, _ = bold.Fprintf(out, "\r专注 %s", f)
		if finished {
			_, _ = fmt.Fprint(out, "\a\n")
			cancel()
		}
	})
	<-ticker.Done()
	if f.Remaining() > 0 {
		_, _ = fmt.Fprintln(out)
	}
	return nil
}
