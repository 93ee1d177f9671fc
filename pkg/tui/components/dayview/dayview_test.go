package dayview

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeline"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

func sample() []task.Task {
	return []task.Task{
		{ID: "a", Title: "Standup", StartTime: "09:00", EndTime: "10:00", Category: task.Work, Priority: task.High},
		{ID: "b", Title: "Gym", StartTime: "18:00", EndTime: "19:30", Category: task.Health, Priority: task.Low},
	}
}

func TestCursorFindsTasks(t *testing.T) {
	m := New(timeline.DefaultAxis())
	m.SetTasks(sample(), time.Time{})
	if m.Rows() != 36 {
		t.Fatalf("expected 36 rows, got %d", m.Rows())
	}

	m.JumpTo(9)
	if got, ok := m.Selected(); !ok || got.ID != "a" {
		t.Fatalf("expected task a at 09:00, got %+v %v", got, ok)
	}
	if !m.NextTask(1) {
		t.Fatalf("expected a next task")
	}
	if got, _ := m.Selected(); got.ID != "b" {
		t.Fatalf("expected task b, got %s", got.ID)
	}
	if m.CursorHour() != 18 {
		t.Fatalf("expected hour 18, got %d", m.CursorHour())
	}
	if m.NextTask(1) {
		t.Fatalf("no task after b")
	}
}

func TestMoveClamps(t *testing.T) {
	m := New(timeline.DefaultAxis())
	m.SetTasks(nil, time.Time{})
	m.Move(-5)
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor at 0, got %d", m.Cursor())
	}
	m.Move(100)
	if m.Cursor() != m.Rows()-1 {
		t.Fatalf("expected cursor on last row, got %d", m.Cursor())
	}
	if _, ok := m.Selected(); ok {
		t.Fatalf("empty slot should not select")
	}
}

func TestJumpToEarlyHourFolds(t *testing.T) {
	m := New(timeline.DefaultAxis())
	m.SetTasks(nil, time.Time{})
	m.JumpTo(2)
	if m.Cursor() != m.Rows()-1 {
		t.Fatalf("02:00 folds past the end, got cursor %d", m.Cursor())
	}
}

func TestViewWindowAndMarker(t *testing.T) {
	m := New(timeline.DefaultAxis())
	m.Height = 6
	now := time.Date(2024, time.May, 21, 9, 30, 0, 0, time.Local)
	m.SetTasks(sample(), now)
	m.JumpTo(9)
	m.Move(1)

	out := m.View(theme.Default())
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 visible lines, got %d", len(lines))
	}
	if !strings.Contains(out, "Standup") {
		t.Fatalf("expected the 09:00 task in view:\n%s", out)
	}
	if !strings.Contains(out, "09:30") {
		t.Fatalf("expected the now marker in view:\n%s", out)
	}
}

func TestZeroNowHidesMarker(t *testing.T) {
	m := New(timeline.DefaultAxis())
	m.Height = 40
	m.SetTasks(nil, time.Time{})
	if out := m.View(theme.Default()); strings.Contains(out, "┼") || strings.Contains(out, "◀") {
		t.Fatalf("expected no now marker for another day:\n%s", out)
	}

	m.SetTasks(nil, time.Date(2024, time.May, 21, 12, 0, 0, 0, time.Local))
	if out := m.View(theme.Default()); !strings.Contains(out, "┼") {
		t.Fatalf("expected the now marker on today:\n%s", out)
	}
}
