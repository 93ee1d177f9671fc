package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a state change notification.
type EventType int

const (
	// EventAIConfigChanged means the assistant configuration was rewritten.
	EventAIConfigChanged EventType = iota
	// EventDarkModeChanged means the palette preference was rewritten.
	EventDarkModeChanged
	// EventDayChanged means a journal record changed; Event.Date names it.
	EventDayChanged
	// EventTasksChanged means the local task list or the backup changed.
	EventTasksChanged
	// EventInvalidated asks for a full reload.
	EventInvalidated
)

// Event is emitted by State.Watch when the state directory changes.
type Event struct {
	Type EventType
	Date string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (s *State) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	dirs, err := collectDirs(s.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Dropped; the next event triggers the same reload.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					// New day/YYYY/MM directories need their own watch.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						s.watchTree(watcher, filepath.Clean(evt.Name), watched, func(ev Event) {
							throttle.Enqueue(ev, send)
						})
						continue
					}
				}
				if ev, ok := s.eventForPath(evt.Name); ok {
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()

	return events, nil
}

// watchTree adds watches below root and reports files that were written
// before the watches existed.
func (s *State) watchTree(watcher *fsnotify.Watcher, root string, watched map[string]struct{}, found func(Event)) {
	dirs, err := collectDirs(root)
	if err != nil {
		return
	}
	for _, dir := range dirs {
		if _, ok := watched[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", dir, err)
			continue
		}
		watched[dir] = struct{}{}
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			if ev, ok := s.eventForPath(path); ok {
				found(ev)
			}
		}
		return nil
	})
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventForPath maps a file under the state directory back to its key.
func (s *State) eventForPath(path string) (Event, bool) {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return Event{}, false
	}
	key := strings.Join(strings.Split(rel, string(os.PathSeparator)), "-")
	switch {
	case key == keyAIConfig:
		return Event{Type: EventAIConfigChanged}, true
	case key == keyDarkMode:
		return Event{Type: EventDarkModeChanged}, true
	case key == keyTasks || key == keyBackup:
		return Event{Type: EventTasksChanged}, true
	case strings.HasPrefix(key, dayPrefix):
		return Event{Type: EventDayChanged, Date: strings.TrimPrefix(key, dayPrefix)}, true
	}
	return Event{}, false
}

// eventThrottle coalesces rapid change notifications so the UI can redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	order   []Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if _, dup := t.pending[ev]; !dup {
		t.pending[ev] = struct{}{}
		t.order = append(t.order, ev)
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	order := t.order
	t.pending = make(map[Event]struct{})
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, ev := range order {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
