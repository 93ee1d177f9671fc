// Package timeline maps tasks onto a fixed vertical day axis.
//
// Offsets are in abstract pixels: an hour is HourHeight tall and the axis
// begins at StartHour. Times before StartHour fold to the end of the axis so
// a 00:30 task sits after midnight instead of at the top.
package timeline

import (
	"fmt"
	"time"

	"tableflip.dev/dayplan/pkg/task"
)

const (
	DefaultStartHour  = 6
	DefaultEndHour    = 24
	DefaultHourHeight = 80
	DefaultMinHeight  = 45
)

// Axis describes the visible part of the day.
type Axis struct {
	StartHour  int
	EndHour    int
	HourHeight float64
	MinHeight  float64
}

// DefaultAxis is 06:00 to 24:00 at 80 per hour.
func DefaultAxis() Axis {
	return Axis{
		StartHour:  DefaultStartHour,
		EndHour:    DefaultEndHour,
		HourHeight: DefaultHourHeight,
		MinHeight:  DefaultMinHeight,
	}
}

// Length is the full height of the axis.
func (a Axis) Length() float64 {
	return float64(a.EndHour-a.StartHour) * a.HourHeight
}

// FoldHour shifts hours before the axis start past midnight.
func (a Axis) FoldHour(hour int) int {
	if hour < a.StartHour {
		return hour + 24
	}
	return hour
}

// Offset is the vertical position of a time of day.
func (a Axis) Offset(c task.Clock) float64 {
	h := a.FoldHour(c.Hour)
	return float64(h-a.StartHour)*a.HourHeight + float64(c.Minute)/60*a.HourHeight
}

// Block is a task placed on the axis.
type Block struct {
	Task   task.Task
	Top    float64
	Height float64
}

// Bottom is the lower edge of the block.
func (b Block) Bottom() float64 {
	return b.Top + b.Height
}

// Band places a task. Zero and negative durations still get MinHeight. The
// second result is false when either time cannot be parsed.
func (a Axis) Band(t task.Task) (Block, bool) {
	start, err := t.Start()
	if err != nil {
		return Block{}, false
	}
	end, err := t.End()
	if err != nil {
		return Block{}, false
	}
	top := a.Offset(start)
	height := a.Offset(end) - top
	if height < a.MinHeight {
		height = a.MinHeight
	}
	return Block{Task: t, Top: top, Height: height}, true
}

// Layout is the placed form of one day.
type Layout struct {
	Axis    Axis
	Blocks  []Block
	Skipped []task.Task
}

// Place lays out every task independently. Overlapping tasks are left
// overlapping; input order is kept so later tasks draw on top.
func (a Axis) Place(tasks []task.Task) Layout {
	l := Layout{Axis: a}
	for _, t := range tasks {
		b, ok := a.Band(t)
		if !ok {
			l.Skipped = append(l.Skipped, t)
			continue
		}
		l.Blocks = append(l.Blocks, b)
	}
	return l
}

// Marker is the current-time indicator.
type Marker struct {
	Raw     float64
	Offset  float64
	Visible bool
}

// Now positions the current-time marker, clamped to the axis.
func (a Axis) Now(now time.Time) Marker {
	raw := a.Offset(task.Clock{Hour: now.Hour(), Minute: now.Minute()})
	clamped := raw
	if clamped < 0 {
		clamped = 0
	}
	if limit := a.Length(); clamped > limit {
		clamped = limit
	}
	return Marker{Raw: raw, Offset: clamped, Visible: raw == clamped}
}

// Tick is a whole-hour gridline.
type Tick struct {
	Hour   int
	Offset float64
	Label  string
}

// Ticks returns one tick per hour from StartHour to EndHour inclusive.
func (a Axis) Ticks() []Tick {
	ticks := make([]Tick, 0, a.EndHour-a.StartHour+1)
	for h := a.StartHour; h <= a.EndHour; h++ {
		ticks = append(ticks, Tick{
			Hour:   h,
			Offset: float64(h-a.StartHour) * a.HourHeight,
			Label:  fmt.Sprintf("%02d:00", h%24),
		})
	}
	return ticks
}

// HourAt maps an offset back to the hour slot it falls in, unfolded into
// 0..23.
func (a Axis) HourAt(offset float64) int {
	if offset < 0 {
		offset = 0
	}
	h := a.StartHour + int(offset/a.HourHeight)
	if h > a.EndHour-1 {
		h = a.EndHour - 1
	}
	return h % 24
}

// SlotPrefill is the quick-add text for adding a task at hour h.
func SlotPrefill(hour int) string {
	return fmt.Sprintf("%02d:00 ", ((hour%24)+24)%24)
}

// Ongoing reports whether an open task spans now.
func Ongoing(t task.Task, now time.Time) bool {
	if t.Completed || now.IsZero() {
		return false
	}
	start, err := t.Start()
	if err != nil {
		return false
	}
	end, err := t.End()
	if err != nil {
		return false
	}
	n := task.Clock{Hour: now.Hour(), Minute: now.Minute(), Second: now.Second()}
	return !n.Before(start) && !end.Before(n)
}
