// Package dayview renders the timeline of a single day with a row cursor.
package dayview

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeline"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

// Model holds the rasterized day and the cursor position.
type Model struct {
	Axis        timeline.Axis
	RowsPerHour int
	Width       int
	Height      int

	layout timeline.Layout
	grid   timeline.Grid
	now    time.Time
	cursor int
	offset int
}

// New returns a day view over axis with two rows per hour.
func New(axis timeline.Axis) *Model {
	return &Model{Axis: axis, RowsPerHour: 2}
}

// SetTasks re-places tasks on the axis. A zero now hides the marker.
func (m *Model) SetTasks(tasks []task.Task, now time.Time) {
	m.now = now
	m.layout = m.Axis.Place(tasks)
	m.grid = timeline.Rasterize(m.layout, m.RowsPerHour, now)
	m.clamp()
}

// Rows is the number of rasterized rows.
func (m *Model) Rows() int {
	return len(m.grid.Rows)
}

// Cursor is the highlighted row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Move shifts the cursor by delta rows.
func (m *Model) Move(delta int) {
	m.cursor += delta
	m.clamp()
}

// JumpTo moves the cursor to the row holding hour, or the nearest row.
func (m *Model) JumpTo(hour int) {
	rows := m.RowsPerHour
	if rows <= 0 {
		rows = 1
	}
	m.cursor = (m.Axis.FoldHour(hour) - m.Axis.StartHour) * rows
	m.clamp()
}

// NextTask moves the cursor to the head of the next (dir > 0) or previous
// task. It reports false when there is none.
func (m *Model) NextTask(dir int) bool {
	for r := m.cursor + dir; r >= 0 && r < len(m.grid.Rows); r += dir {
		row := m.grid.Rows[r]
		if row.Block >= 0 && row.Head {
			m.cursor = r
			m.clamp()
			return true
		}
	}
	return false
}

// Selected returns the task under the cursor.
func (m *Model) Selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.grid.Rows) {
		return task.Task{}, false
	}
	idx := m.grid.Rows[m.cursor].Block
	if idx < 0 || idx >= len(m.layout.Blocks) {
		return task.Task{}, false
	}
	return m.layout.Blocks[idx].Task, true
}

// CursorHour is the hour of the highlighted row.
func (m *Model) CursorHour() int {
	return m.grid.HourOfRow(m.Axis, m.cursor)
}

func (m *Model) clamp() {
	if m.cursor >= len(m.grid.Rows) {
		m.cursor = len(m.grid.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.Height <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.Height {
		m.offset = m.cursor - m.Height + 1
	}
	if last := len(m.grid.Rows) - m.Height; m.offset > last && last >= 0 {
		m.offset = last
	}
}

// View renders the visible window of rows.
func (m *Model) View(th theme.Theme) string {
	tt := th.Timeline
	width := m.Width
	if width < 20 {
		width = 60
	}
	end := len(m.grid.Rows)
	if m.Height > 0 && m.offset+m.Height < end {
		end = m.offset + m.Height
	}

	lines := make([]string, 0, end-m.offset)
	for r := m.offset; r < end; r++ {
		row := m.grid.Rows[r]
		label := "     "
		if row.Label != "" {
			label = row.Label
		}

		var body string
		switch {
		case row.Block < 0:
			body = tt.Slot.Render("┆")
			if row.Now {
				body = tt.Now.Render("┼" + strings.Repeat("─", 8) + " " + m.now.Format("15:04"))
			}
		default:
			t := m.layout.Blocks[row.Block].Task
			cat := th.CategoryStyle(t.Category)
			text := ""
			if row.Head {
				text = fmt.Sprintf(" %s-%s %s %s", t.StartTime, t.EndTime, t.Title, t.Priority.Stars())
				text = truncate.StringWithTail(text, uint(width-8), "…")
				switch {
				case t.Completed:
					text = tt.Done.Render(text)
				case timeline.Ongoing(t, m.now):
					text = tt.Ongoing.Render(text)
				}
			}
			body = cat.Render("┃") + text
			if row.Now {
				body += tt.Now.Render(" ◀ " + m.now.Format("15:04"))
			}
		}
		if r == m.cursor {
			label = tt.Cursor.Render(label)
		} else {
			label = tt.Label.Render(label)
		}
		lines = append(lines, label+" "+body)
	}
	return strings.Join(lines, "\n")
}
