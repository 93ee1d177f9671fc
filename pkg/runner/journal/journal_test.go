package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/cache"
	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
)

type memoryFile struct {
	tasks []task.Task
}

func (m *memoryFile) LoadTasks() ([]task.Task, error) { return task.Clone(m.tasks), nil }

func (m *memoryFile) SaveTasks(tasks []task.Task) error {
	m.tasks = task.Clone(tasks)
	return nil
}

type memoryDays map[string]store.Day

func (d memoryDays) Day(date string) (store.Day, bool) {
	v, ok := d[date]
	return v, ok
}

func (d memoryDays) SaveDay(date string, v store.Day) error {
	d[date] = v
	return nil
}

func planner(at time.Time, days memoryDays) *app.Planner {
	f := &memoryFile{tasks: []task.Task{
		{ID: "a", Title: "run", StartTime: "07:00", EndTime: "08:00", Date: "2024-05-21", Completed: true},
	}}
	return &app.Planner{
		Cache:   cache.New(),
		Gateway: gateway.NewLocal(f),
		Days:    days,
		Now:     func() time.Time { return at },
	}
}

func TestJournalClosedInTheAfternoon(t *testing.T) {
	days := memoryDays{}
	p := planner(time.Date(2024, time.May, 21, 15, 0, 0, 0, time.Local), days)

	j := Journal{Planner: p, Mood: task.Happy}
	if err := j.Do(context.Background()); !errors.Is(err, ErrNotYet) {
		t.Fatalf("expected ErrNotYet, got %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("nothing should be saved")
	}

	j.Force = true
	if err := j.Do(context.Background()); err != nil {
		t.Fatalf("forced journal: %v", err)
	}
	if got := days["2024-05-21"]; got.Mood != task.Happy {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestJournalEveningAndShow(t *testing.T) {
	days := memoryDays{}
	p := planner(time.Date(2024, time.May, 21, 21, 0, 0, 0, time.Local), days)

	j := Journal{Planner: p, Reflection: "first 5k"}
	if err := j.Do(context.Background()); err != nil {
		t.Fatalf("journal: %v", err)
	}
	got := days["2024-05-21"]
	if got.Mood != task.Neutral || got.Reflection != "first 5k" {
		t.Fatalf("unexpected record %+v", got)
	}

	show := Journal{Planner: p, Show: true}
	if err := show.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	missing := Journal{Planner: p, Show: true, Date: "2024-05-20"}
	if err := missing.Do(context.Background()); err == nil {
		t.Fatalf("expected an error for a day without a record")
	}
}
