// Package daylist renders a day's tasks grouped into morning, afternoon and
// evening, with a task cursor.
package daylist

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeline"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

// Empty is shown under a period with nothing planned.
const Empty = "暂无安排"

type Model struct {
	Width int

	groups []task.PeriodGroup
	flat   []task.Task
	now    time.Time
	cursor int
}

func New() *Model {
	return &Model{}
}

// SetTasks regroups tasks and keeps the cursor on the same task when it is
// still present.
func (m *Model) SetTasks(tasks []task.Task, now time.Time) {
	prev, had := m.Selected()
	m.now = now
	m.groups = task.Periods(tasks)
	m.flat = m.flat[:0]
	for _, g := range m.groups {
		m.flat = append(m.flat, g.Tasks...)
	}
	if had {
		for i, t := range m.flat {
			if t.ID == prev.ID {
				m.cursor = i
				return
			}
		}
	}
	m.Move(0)
}

// Move shifts the cursor by delta tasks.
func (m *Model) Move(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the task under the cursor.
func (m *Model) Selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return task.Task{}, false
	}
	return m.flat[m.cursor], true
}

func (m *Model) View(th theme.Theme) string {
	width := m.Width
	if width < 20 {
		width = 60
	}
	var b strings.Builder
	i := 0
	for gi, g := range m.groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(th.Panel.Title.Render(fmt.Sprintf("%s · %d", g.Period.Label(), len(g.Tasks))))
		b.WriteString("\n")
		if len(g.Tasks) == 0 {
			b.WriteString(th.Panel.Muted.Render("  " + Empty))
			b.WriteString("\n")
		}
		for _, t := range g.Tasks {
			mark := "○"
			if t.Completed {
				mark = "✓"
			}
			line := fmt.Sprintf("%s %s-%s %s", mark, t.StartTime, t.EndTime, t.Title)
			line = truncate.StringWithTail(line, uint(width-12), "…")
			switch {
			case t.Completed:
				line = th.Timeline.Done.Render(line)
			case timeline.Ongoing(t, m.now):
				line = th.Timeline.Ongoing.Render(line)
			}
			line += " " + th.CategoryStyle(t.Category).Render(string(t.Category)) + " " + th.Panel.Muted.Render(t.Priority.Stars())
			prefix := "  "
			if i == m.cursor {
				prefix = th.Panel.Accent.Render("▸ ")
			}
			b.WriteString(prefix + line + "\n")
			i++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
