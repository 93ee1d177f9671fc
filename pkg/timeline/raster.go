package timeline

import "time"

// Row is one terminal line of a rasterized timeline.
type Row struct {
	// Label is the hour label, set on rows that start a whole hour.
	Label string
	// Block indexes Layout.Blocks, or -1 for an empty slot.
	Block int
	// Head is set on the first row a block occupies.
	Head bool
	// Now marks the row holding the current-time marker.
	Now bool
}

// Grid is a rasterized Layout.
type Grid struct {
	RowsPerHour int
	Rows        []Row
}

// HourOfRow returns the unfolded hour a row belongs to.
func (g Grid) HourOfRow(a Axis, row int) int {
	if g.RowsPerHour <= 0 {
		return a.StartHour % 24
	}
	return (a.StartHour + row/g.RowsPerHour) % 24
}

func rowOf(a Axis, offset float64, rowsPerHour int) int {
	if offset <= 0 {
		return 0
	}
	return int(offset / a.HourHeight * float64(rowsPerHour))
}

// Rasterize maps blocks to rows. Each block covers at least one row and later
// blocks overwrite earlier ones where they overlap. Blocks folded past the end
// of the axis extend the grid. A zero now leaves every row unmarked.
func Rasterize(l Layout, rowsPerHour int, now time.Time) Grid {
	if rowsPerHour <= 0 {
		rowsPerHour = 1
	}
	a := l.Axis
	n := (a.EndHour - a.StartHour) * rowsPerHour
	for _, b := range l.Blocks {
		if end := rowOf(a, b.Bottom(), rowsPerHour); end > n {
			n = end
		}
	}
	g := Grid{RowsPerHour: rowsPerHour, Rows: make([]Row, n)}
	for i := range g.Rows {
		g.Rows[i].Block = -1
		if i%rowsPerHour == 0 {
			g.Rows[i].Label = a.tickLabel(a.StartHour + i/rowsPerHour)
		}
	}
	for i, b := range l.Blocks {
		first := rowOf(a, b.Top, rowsPerHour)
		last := rowOf(a, b.Bottom(), rowsPerHour)
		if last <= first {
			last = first + 1
		}
		for r := first; r < last && r < len(g.Rows); r++ {
			g.Rows[r].Block = i
			g.Rows[r].Head = r == first
		}
	}
	if now.IsZero() {
		return g
	}
	if m := a.Now(now); m.Visible {
		r := rowOf(a, m.Offset, rowsPerHour)
		if r >= len(g.Rows) {
			r = len(g.Rows) - 1
		}
		if r >= 0 {
			g.Rows[r].Now = true
		}
	}
	return g
}

func (a Axis) tickLabel(h int) string {
	for _, t := range a.Ticks() {
		if t.Hour == h {
			return t.Label
		}
	}
	return ""
}
