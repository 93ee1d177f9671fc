package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/cache"
	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

var (
	// ErrEmptyInput is returned by QuickAdd for blank input.
	ErrEmptyInput = errors.New("app: empty input")
	// ErrNoGateway means the planner was built without a gateway.
	ErrNoGateway = errors.New("app: no gateway configured")
)

// Notice is a transient user-facing failure message.
type Notice string

const (
	NoticeSyncFailed   Notice = "同步失败，请检查网络连接"
	NoticeDeleteFailed Notice = "删除失败"
	NoticeLoadFailed   Notice = "无法同步云端任务"
)

// Assistant is the subset of ai.Assistant the planner uses.
type Assistant interface {
	ParseTask(ctx context.Context, input, refDate string) ai.Parsed
	Suggest(ctx context.Context, tasks []task.Task) string
	JournalImage(ctx context.Context, tasks []task.Task, mood string) string
}

// Journal stores the per-day reflection record.
type Journal interface {
	Day(date string) (store.Day, bool)
	SaveDay(date string, d store.Day) error
}

// Planner coordinates the task cache with a gateway. Local changes apply
// immediately and are rolled back when the gateway rejects them. It is safe
// for use from Bubble Tea commands running on other goroutines.
type Planner struct {
	Cache   *cache.Cache
	Gateway gateway.Gateway
	// Assistant is nil when no model key is configured. Use SetAssistant
	// once the planner is shared.
	Assistant Assistant
	// Backup, when set, receives the cache after each confirmed change.
	Backup gateway.Backup
	// Days keeps journal records.
	Days Journal
	// Now defaults to time.Now.
	Now func() time.Time
	// Notify receives failure notices.
	Notify func(Notice)

	mu            sync.Mutex
	selected      string
	pendingDelete string
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// SetAssistant swaps the assistant, for example after the model settings
// change. A nil assistant disables parsing and suggestions.
func (p *Planner) SetAssistant(a Assistant) {
	p.mu.Lock()
	p.Assistant = a
	p.mu.Unlock()
}

func (p *Planner) assistant() Assistant {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Assistant
}

func (p *Planner) notify(n Notice) {
	if p.Notify != nil {
		p.Notify(n)
	}
}

func (p *Planner) backup() {
	if p.Backup == nil || p.Cache == nil {
		return
	}
	_ = p.Backup.SaveBackup(p.Cache.Snapshot())
}

// Load replaces the cache with everything the gateway lists. On failure the
// cache keeps its contents.
func (p *Planner) Load(ctx context.Context) error {
	if p.Gateway == nil {
		return ErrNoGateway
	}
	tasks, err := p.Gateway.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("app: load tasks: %w", err)
	}
	p.Cache.Replace(tasks)
	return nil
}

// Selected returns the date being viewed, today until changed.
func (p *Planner) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == "" {
		p.selected = timeutil.Today(p.now())
	}
	return p.selected
}

// SelectDate switches the viewed date.
func (p *Planner) SelectDate(date string) error {
	if _, err := task.ParseDate(date); err != nil {
		return fmt.Errorf("app: invalid date %q", date)
	}
	p.mu.Lock()
	p.selected = date
	p.mu.Unlock()
	return nil
}

// ShiftDate moves the viewed date by days and returns it.
func (p *Planner) ShiftDate(days int) string {
	next := timeutil.ShiftDay(p.Selected(), days)
	p.mu.Lock()
	p.selected = next
	p.mu.Unlock()
	return next
}

// Today jumps back to the current day and returns it.
func (p *Planner) Today() string {
	today := timeutil.Today(p.now())
	p.mu.Lock()
	p.selected = today
	p.mu.Unlock()
	return today
}

// IsToday reports whether the viewed date is the current day.
func (p *Planner) IsToday() bool {
	return p.Selected() == timeutil.Today(p.now())
}

// Visible returns the cached tasks on the viewed date.
func (p *Planner) Visible() []task.Task {
	return task.ForDate(p.Cache.Snapshot(), p.Selected())
}

// QuickAdd creates a task from free text. Without an assistant the whole
// input becomes the title; with one, parsed fields override the defaults and
// a parsed date may place the task on another day. The task is cached only
// once the gateway has stored it.
func (p *Planner) QuickAdd(ctx context.Context, input string) (*task.Task, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}
	if p.Gateway == nil {
		return nil, ErrNoGateway
	}
	draft := p.draftFor(ctx, input)

	created, err := p.Gateway.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("app: create task: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("app: create task: %w", gateway.ErrMalformed)
	}
	if created.ID == "" {
		// Acknowledged without a record; fetch it back so it has an id.
		t := draft.WithID("")
		if err := p.Load(ctx); err != nil {
			return nil, err
		}
		p.backup()
		return &t, nil
	}
	p.Cache.Add(*created)
	p.backup()
	return created, nil
}

func (p *Planner) draftFor(ctx context.Context, input string) task.Draft {
	date := p.Selected()
	start := 9
	if now := p.now(); date == timeutil.Today(now) {
		start = (now.Hour() + 1) % 24
	}
	d := task.Draft{
		Title:     input,
		StartTime: task.At(start).String(),
		EndTime:   task.At(start + 1).String(),
		Category:  task.Life,
		Priority:  task.Medium,
		Date:      date,
	}
	a := p.assistant()
	if a == nil {
		return d
	}
	parsed := a.ParseTask(ctx, input, date)
	if parsed.Title != "" {
		d.Title = parsed.Title
	}
	if parsed.Date != "" {
		d.Date = parsed.Date
	}
	if parsed.StartTime != "" {
		d.StartTime = parsed.StartTime
	}
	if parsed.EndTime != "" {
		d.EndTime = parsed.EndTime
	}
	if parsed.Category != nil {
		d.Category = *parsed.Category
	}
	if parsed.Priority != nil {
		d.Priority = *parsed.Priority
	}
	return d
}

// Toggle flips a task's completion and confirms it with the gateway.
func (p *Planner) Toggle(ctx context.Context, id string) error {
	return p.BeginToggle(id).Settle(ctx)
}

// Delete removes a task and confirms it with the gateway.
func (p *Planner) Delete(ctx context.Context, id string) error {
	return p.BeginDelete(id).Settle(ctx)
}

// Edit applies a field change and confirms it with the gateway.
func (p *Planner) Edit(ctx context.Context, id string, patch task.Patch) error {
	return p.BeginEdit(id, patch).Settle(ctx)
}

// RequestDelete opens the delete confirmation for id. It reports false when
// the task is not cached.
func (p *Planner) RequestDelete(id string) bool {
	if _, ok := p.Cache.Get(id); !ok {
		return false
	}
	p.mu.Lock()
	p.pendingDelete = id
	p.mu.Unlock()
	return true
}

// PendingDelete returns the id awaiting confirmation.
func (p *Planner) PendingDelete() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pendingDelete, p.pendingDelete != ""
}

// CancelDelete closes the confirmation without deleting.
func (p *Planner) CancelDelete() {
	p.mu.Lock()
	p.pendingDelete = ""
	p.mu.Unlock()
}

// ConfirmDelete deletes the pending task. The confirmation is closed whether
// or not the delete succeeds.
func (p *Planner) ConfirmDelete(ctx context.Context) error {
	return p.BeginConfirmedDelete().Settle(ctx)
}

// BeginConfirmedDelete closes the confirmation and removes the pending task
// locally. It returns nil when nothing was pending.
func (p *Planner) BeginConfirmedDelete() *Mutation {
	p.mu.Lock()
	id := p.pendingDelete
	p.pendingDelete = ""
	p.mu.Unlock()
	if id == "" {
		return nil
	}
	return p.BeginDelete(id)
}
