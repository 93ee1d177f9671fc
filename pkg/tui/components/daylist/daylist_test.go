package daylist

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

func TestSelectionFollowsTask(t *testing.T) {
	m := New()
	tasks := []task.Task{
		{ID: "a", Title: "Standup", StartTime: "09:00", EndTime: "10:00"},
		{ID: "b", Title: "Lunch", StartTime: "12:00", EndTime: "13:00"},
		{ID: "c", Title: "Dinner", StartTime: "19:00", EndTime: "20:00"},
	}
	m.SetTasks(tasks, time.Time{})
	m.Move(1)
	if got, _ := m.Selected(); got.ID != "b" {
		t.Fatalf("expected b, got %s", got.ID)
	}

	m.SetTasks(tasks[1:], time.Time{})
	if got, _ := m.Selected(); got.ID != "b" {
		t.Fatalf("selection should stay on b, got %s", got.ID)
	}

	m.SetTasks(tasks[2:], time.Time{})
	if got, _ := m.Selected(); got.ID != "c" {
		t.Fatalf("expected c once b is gone, got %s", got.ID)
	}
}

func TestViewShowsEmptyPeriods(t *testing.T) {
	m := New()
	m.SetTasks([]task.Task{{ID: "a", Title: "Standup", StartTime: "09:00", EndTime: "10:00"}}, time.Time{})
	out := m.View(theme.Default())
	if strings.Count(out, Empty) != 2 {
		t.Fatalf("expected two empty periods:\n%s", out)
	}
	if !strings.Contains(out, "Standup") {
		t.Fatalf("missing task:\n%s", out)
	}
	if _, ok := New().Selected(); ok {
		t.Fatalf("empty list should not select")
	}
}
