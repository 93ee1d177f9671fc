package task

import (
	"math"
	"sort"
)

// ForDate returns the tasks scheduled on date, in their original order.
func ForDate(tasks []Task, date string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// Period is a named part of the day.
type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
)

// Label is the heading shown above a period.
func (p Period) Label() string {
	switch p {
	case Morning:
		return "上午"
	case Afternoon:
		return "下午"
	case Evening:
		return "晚上"
	}
	return string(p)
}

// PeriodAt picks the part of the day an hour falls into.
func PeriodAt(hour int) Period {
	switch {
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	}
	return Evening
}

// PeriodGroup is one part of the day with its tasks sorted by start time.
type PeriodGroup struct {
	Period Period
	Tasks  []Task
}

// Periods splits tasks into morning, afternoon and evening. Tasks whose start
// time cannot be parsed land in the morning group, ahead of the others.
func Periods(tasks []Task) []PeriodGroup {
	groups := []PeriodGroup{{Period: Morning}, {Period: Afternoon}, {Period: Evening}}
	for _, t := range tasks {
		hour := -1
		if c, err := t.Start(); err == nil {
			hour = c.Hour
		}
		switch PeriodAt(hour) {
		case Morning:
			groups[0].Tasks = append(groups[0].Tasks, t)
		case Afternoon:
			groups[1].Tasks = append(groups[1].Tasks, t)
		default:
			groups[2].Tasks = append(groups[2].Tasks, t)
		}
	}
	for i := range groups {
		SortByStart(groups[i].Tasks)
	}
	return groups
}

// SortByStart orders tasks by start time, stable for equal or unparseable
// times.
func SortByStart(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return startMinutes(tasks[i]) < startMinutes(tasks[j])
	})
}

func startMinutes(t Task) int {
	c, err := t.Start()
	if err != nil {
		return -1
	}
	return c.Minutes()*60 + c.Second
}

// Summary is the per-day tally shown in the sidebar.
type Summary struct {
	Total      int
	Completed  int
	Rate       int
	ByCategory map[Category]int
}

// Summarize counts tasks per category and computes the completion rate as a
// whole percent.
func Summarize(tasks []Task) Summary {
	s := Summary{ByCategory: make(map[Category]int, 4)}
	for _, c := range AllCategories() {
		s.ByCategory[c] = 0
	}
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
		s.ByCategory[t.Category]++
	}
	if s.Total > 0 {
		s.Rate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
