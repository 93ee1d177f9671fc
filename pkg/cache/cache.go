// Package cache holds the session's canonical task list.
package cache

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/dayplan/pkg/task"
)

// ChangeType enumerates the mutations the cache announces.
type ChangeType string

const (
	// ChangeCreate indicates a task was added.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an existing task changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a task was removed.
	ChangeDelete ChangeType = "delete"
	// ChangeReset indicates the whole list was replaced.
	ChangeReset ChangeType = "reset"
)

// ChangeMsg is emitted on every mutation.
type ChangeMsg struct {
	Action ChangeType
	Task   task.Task
	// Previous is set for updates.
	Previous *task.Task
}

// Cache keeps tasks in memory and emits ChangeMsgs on mutation. Readers take
// snapshots; only the planner writes.
type Cache struct {
	mu    sync.RWMutex
	tasks []task.Task

	eventCh chan tea.Msg
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{eventCh: make(chan tea.Msg, 64)}
}

// Events exposes the event channel for Bubble Tea subscriptions.
func (c *Cache) Events() <-chan tea.Msg {
	return c.eventCh
}

// Snapshot returns a copy of the current list.
func (c *Cache) Snapshot() []task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := task.Clone(c.tasks)
	if out == nil {
		out = []task.Task{}
	}
	return out
}

// Len returns the number of cached tasks.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks)
}

// Replace swaps in a new list. It is also how rollbacks restore a snapshot.
func (c *Cache) Replace(tasks []task.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = task.Clone(tasks)
	c.emit(ChangeMsg{Action: ChangeReset})
}

// Get finds a task by id.
func (c *Cache) Get(id string) (task.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := c.index(id); idx >= 0 {
		return c.tasks[idx], true
	}
	return task.Task{}, false
}

// Add appends a task. A task whose id is already cached replaces it instead.
func (c *Cache) Add(t task.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.index(t.ID); idx >= 0 && t.ID != "" {
		prev := c.tasks[idx]
		c.tasks[idx] = t
		c.emit(ChangeMsg{Action: ChangeUpdate, Task: t, Previous: &prev})
		return
	}
	c.tasks = append(c.tasks, t)
	c.emit(ChangeMsg{Action: ChangeCreate, Task: t})
}

// Put replaces the task with the same id. It reports false when no such task
// is cached.
func (c *Cache) Put(t task.Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.index(t.ID)
	if idx < 0 {
		return false
	}
	prev := c.tasks[idx]
	c.tasks[idx] = t
	c.emit(ChangeMsg{Action: ChangeUpdate, Task: t, Previous: &prev})
	return true
}

// Remove deletes the task with id and returns it.
func (c *Cache) Remove(id string) (task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.index(id)
	if idx < 0 {
		return task.Task{}, false
	}
	removed := c.tasks[idx]
	c.tasks = append(c.tasks[:idx:idx], c.tasks[idx+1:]...)
	c.emit(ChangeMsg{Action: ChangeDelete, Task: removed})
	return removed, true
}

func (c *Cache) index(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cache) emit(msg tea.Msg) {
	select {
	case c.eventCh <- msg:
	default:
	}
}
