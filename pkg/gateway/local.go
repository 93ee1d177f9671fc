package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tableflip.dev/dayplan/pkg/task"
)

// TaskFile is the persisted list the Local gateway reads and rewrites.
type TaskFile interface {
	LoadTasks() ([]task.Task, error)
	SaveTasks(tasks []task.Task) error
}

// Local serves tasks from the state directory, for running without a
// backend. Ids are random UUIDs.
type Local struct {
	mu    sync.Mutex
	file  TaskFile
	newID func() string
}

var _ Gateway = (*Local)(nil)

// NewLocal creates a Local gateway over file.
func NewLocal(file TaskFile) *Local {
	return &Local{file: file, newID: uuid.NewString}
}

// GetAll implements Gateway.
func (l *Local) GetAll(_ context.Context) ([]task.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks, err := l.file.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("gateway: load local tasks: %w", err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// Create implements Gateway.
func (l *Local) Create(_ context.Context, d task.Draft) (*task.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks, err := l.file.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("gateway: load local tasks: %w", err)
	}
	t := d.WithID(l.newID())
	if err := l.file.SaveTasks(append(tasks, t)); err != nil {
		return nil, fmt.Errorf("gateway: save local tasks: %w", err)
	}
	return &t, nil
}

// Update implements Gateway.
func (l *Local) Update(_ context.Context, id string, p task.Patch) (*task.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks, err := l.file.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("gateway: load local tasks: %w", err)
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i] = p.Apply(tasks[i])
		if err := l.file.SaveTasks(tasks); err != nil {
			return nil, fmt.Errorf("gateway: save local tasks: %w", err)
		}
		updated := tasks[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete implements Gateway.
func (l *Local) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks, err := l.file.LoadTasks()
	if err != nil {
		return fmt.Errorf("gateway: load local tasks: %w", err)
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks = append(tasks[:i], tasks[i+1:]...)
		if err := l.file.SaveTasks(tasks); err != nil {
			return fmt.Errorf("gateway: save local tasks: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
