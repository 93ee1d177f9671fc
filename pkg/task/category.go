package task

import (
	"fmt"
	"strings"
)

// Category groups tasks by area of life. The string value is the label the
// remote API stores.
type Category string

const (
	// Work is professional activity.
	Work Category = "工作"
	// Study is learning and reading.
	Study Category = "学习"
	// Health is exercise, rest and medical.
	Health Category = "健康"
	// Life is everything else and the default.
	Life Category = "生活"
)

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{Work, Study, Health, Life}
}

// Name returns the English identifier of the category.
func (c Category) Name() string {
	switch c {
	case Work:
		return "WORK"
	case Study:
		return "STUDY"
	case Health:
		return "HEALTH"
	case Life:
		return "LIFE"
	}
	return strings.ToUpper(string(c))
}

// ParseCategory accepts the stored label or the English name, case
// insensitive.
func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	for _, c := range AllCategories() {
		if trimmed == string(c) || strings.EqualFold(trimmed, c.Name()) {
			return c, nil
		}
	}
	return Life, fmt.Errorf("task: unknown category %q", raw)
}

// Priority is an ordinal importance level.
type Priority int

const (
	Low    Priority = 1
	Medium Priority = 2
	High   Priority = 3
)

// Clamp pins p into the Low..High range.
func (p Priority) Clamp() Priority {
	switch {
	case p < Low:
		return Low
	case p > High:
		return High
	}
	return p
}

// Stars renders the priority as that many ★.
func (p Priority) Stars() string {
	return strings.Repeat("★", int(p.Clamp()))
}

// Mood is the emoji recorded with a day's journal.
type Mood string

const (
	Happy   Mood = "😊"
	Neutral Mood = "😐"
	Sad     Mood = "😔"
)

// ParseMood accepts the emoji or one of happy, neutral, sad.
func ParseMood(raw string) (Mood, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "neutral", string(Neutral):
		return Neutral, nil
	case "happy", string(Happy):
		return Happy, nil
	case "sad", string(Sad):
		return Sad, nil
	}
	return Neutral, fmt.Errorf("task: unknown mood %q", raw)
}
