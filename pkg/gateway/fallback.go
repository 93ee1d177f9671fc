package gateway

import (
	"context"
	"log"

	"tableflip.dev/dayplan/pkg/task"
)

// Backup keeps the most recently fetched task list.
type Backup interface {
	SaveBackup(tasks []task.Task) error
	LoadBackup() ([]task.Task, bool)
}

// Fallback wraps a Gateway so that reads survive an unreachable backend.
// Successful lists are written to the backup; offline failures serve the
// backup instead. Writes pass straight through.
type Fallback struct {
	Gateway
	backup Backup
}

// WithBackup decorates g.
func WithBackup(g Gateway, b Backup) *Fallback {
	return &Fallback{Gateway: g, backup: b}
}

// GetAll implements Gateway.
func (f *Fallback) GetAll(ctx context.Context) ([]task.Task, error) {
	tasks, err := f.Gateway.GetAll(ctx)
	if err == nil {
		if f.backup != nil {
			if err := f.backup.SaveBackup(tasks); err != nil {
				log.Printf("gateway: save backup: %v", err)
			}
		}
		return tasks, nil
	}
	if !Offline(err) || f.backup == nil {
		return nil, err
	}
	backup, ok := f.backup.LoadBackup()
	if !ok {
		return nil, err
	}
	log.Printf("gateway: %v; serving %d tasks from backup", err, len(backup))
	return backup, nil
}
