package gateway

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/dayplan/pkg/task"
)

type stubGateway struct {
	tasks []task.Task
	err   error
	calls int
}

func (s *stubGateway) GetAll(context.Context) ([]task.Task, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return task.Clone(s.tasks), nil
}

func (s *stubGateway) Create(_ context.Context, d task.Draft) (*task.Task, error) {
	t := d.WithID("new")
	return &t, s.err
}

func (s *stubGateway) Update(context.Context, string, task.Patch) (*task.Task, error) {
	return nil, s.err
}

func (s *stubGateway) Delete(context.Context, string) error {
	return s.err
}

type memoryBackup struct {
	tasks []task.Task
	saved int
}

func (m *memoryBackup) SaveBackup(tasks []task.Task) error {
	m.saved++
	m.tasks = task.Clone(tasks)
	return nil
}

func (m *memoryBackup) LoadBackup() ([]task.Task, bool) {
	if m.tasks == nil {
		return nil, false
	}
	return task.Clone(m.tasks), true
}

func TestFallbackSavesAndServesBackup(t *testing.T) {
	inner := &stubGateway{tasks: []task.Task{{ID: "a"}, {ID: "b"}}}
	backup := &memoryBackup{}
	g := WithBackup(inner, backup)

	tasks, err := g.GetAll(context.Background())
	if err != nil || len(tasks) != 2 {
		t.Fatalf("unexpected live result %+v %v", tasks, err)
	}
	if backup.saved != 1 {
		t.Fatalf("expected backup to be written once, got %d", backup.saved)
	}

	inner.err = ErrTransport
	tasks, err = g.GetAll(context.Background())
	if err != nil {
		t.Fatalf("expected backup to hide offline failure, got %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "a" {
		t.Fatalf("unexpected backup tasks %+v", tasks)
	}

	inner.err = ErrStatus
	if tasks, err := g.GetAll(context.Background()); err != nil || len(tasks) != 2 {
		t.Fatalf("expected backup on non-2xx, got %+v %v", tasks, err)
	}
}

func TestFallbackDoesNotMaskBusinessFailure(t *testing.T) {
	inner := &stubGateway{err: ErrBusiness}
	backup := &memoryBackup{tasks: []task.Task{{ID: "stale"}}}
	g := WithBackup(inner, backup)
	if _, err := g.GetAll(context.Background()); !errors.Is(err, ErrBusiness) {
		t.Fatalf("expected business failure, got %v", err)
	}
}

func TestFallbackWithoutBackupReturnsError(t *testing.T) {
	g := WithBackup(&stubGateway{err: ErrTransport}, &memoryBackup{})
	if _, err := g.GetAll(context.Background()); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestFallbackWritesPassThrough(t *testing.T) {
	backup := &memoryBackup{}
	g := WithBackup(&stubGateway{}, backup)
	if _, err := g.Create(context.Background(), task.Draft{Title: "x"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := g.Delete(context.Background(), "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if backup.saved != 0 {
		t.Fatalf("writes must not touch the backup")
	}
}
