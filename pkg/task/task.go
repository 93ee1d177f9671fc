// Package task defines the scheduled activity record shared by every layer of
// the planner, plus the pure views derived from a list of them.
package task

import "time"

// DateLayout is the calendar-day format used for Task.Date.
const DateLayout = "2006-01-02"

// Task is a titled, time-boxed, categorized activity on a specific date.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Category  Category `json:"category"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	Review    string   `json:"review,omitempty"`
	Date      string   `json:"date"`
}

// Draft is a task that has not been stored yet, the body of a create call.
type Draft struct {
	Title     string   `json:"title"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Category  Category `json:"category"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	Review    string   `json:"review,omitempty"`
	Date      string   `json:"date"`
}

// WithID promotes a draft into a task.
func (d Draft) WithID(id string) Task {
	return Task{
		ID:        id,
		Title:     d.Title,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Category:  d.Category,
		Priority:  d.Priority,
		Completed: d.Completed,
		Review:    d.Review,
		Date:      d.Date,
	}
}

// Patch carries only the fields that change in an update. Nil fields are
// omitted from the wire.
type Patch struct {
	Title     *string   `json:"title,omitempty"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
	Review    *string   `json:"review,omitempty"`
	Date      *string   `json:"date,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.StartTime == nil && p.EndTime == nil && p.Category == nil &&
		p.Priority == nil && p.Completed == nil && p.Review == nil && p.Date == nil
}

// Apply returns a copy of t with the patch applied.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		t.EndTime = *p.EndTime
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Review != nil {
		t.Review = *p.Review
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	return t
}

// Start parses StartTime.
func (t Task) Start() (Clock, error) {
	return ParseClock(t.StartTime)
}

// End parses EndTime.
func (t Task) End() (Clock, error) {
	return ParseClock(t.EndTime)
}

// FormatDate renders the calendar day of v.
func FormatDate(v time.Time) string {
	return v.Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD day in the local zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// Clone copies a task list.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
