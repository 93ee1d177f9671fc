// Package calendar provides helpers for rendering the week, month and year
// views.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

// Header is the weekday row, Sunday first.
const Header = "日 一 二 三 四 五 六"

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	Count      int
	Done       int
	IsToday    bool
	IsSelected bool
}

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	DoneStyle     lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
}

// OptionsFor derives calendar styles from th.
func OptionsFor(th theme.Theme) Options {
	return Options{
		HeaderStyle:   th.Panel.Muted.Copy().Bold(true),
		EmptyStyle:    th.Timeline.Slot,
		EntryStyle:    th.Panel.Body.Copy().Bold(true),
		DoneStyle:     th.Panel.Accent,
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: th.Timeline.Cursor,
		ShowHeader:    true,
	}
}

// Counts tallies tasks per day of month for first's month.
func Counts(first time.Time, tasks []task.Task) map[int]Day {
	out := make(map[int]Day)
	for _, t := range tasks {
		d, err := task.ParseDate(t.Date)
		if err != nil || d.Year() != first.Year() || d.Month() != first.Month() {
			continue
		}
		day := out[d.Day()]
		day.Day = d.Day()
		day.Count++
		if t.Completed {
			day.Done++
		}
		out[d.Day()] = day
	}
	return out
}

// Render produces a multi-line calendar string for the given month.
func Render(month time.Time, days map[int]Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := DaysIn(month)

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render(Header))
	}

	startOffset := int(first.Weekday())
	totalCells := startOffset + daysInMonth
	rows := (totalCells + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			cellIdx := row*7 + col
			day := cellIdx - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(days[day], day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.EmptyStyle
	switch {
	case info.Count > 0 && info.Done == info.Count:
		style = opts.DoneStyle
	case info.Count > 0:
		style = opts.EntryStyle
	}
	if info.IsToday {
		style = style.Copy().Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = opts.SelectedStyle
	}
	return style.Render(text)
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// Month renders the month holding selected, marking today.
func Month(th theme.Theme, selected, today time.Time, tasks []task.Task) string {
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, time.Local)
	days := Counts(first, tasks)
	mark(days, first, selected, today)
	title := th.Panel.Title.Render(fmt.Sprintf("%d年%d月", first.Year(), int(first.Month())))
	return title + "\n" + Render(first, days, OptionsFor(th))
}

// Year renders twelve small months, three per row.
func Year(th theme.Theme, selected, today time.Time, tasks []task.Task) string {
	opts := OptionsFor(th)
	var rows []string
	var row []string
	for m := time.January; m <= time.December; m++ {
		first := time.Date(selected.Year(), m, 1, 0, 0, 0, 0, time.Local)
		days := Counts(first, tasks)
		mark(days, first, selected, today)
		block := th.Panel.Title.Render(fmt.Sprintf("%d月", int(m))) + "\n" + Render(first, days, opts)
		row = append(row, lipgloss.NewStyle().Width(22).Render(block))
		if len(row) == 3 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	header := th.Panel.Title.Render(fmt.Sprintf("%d年", selected.Year()))
	return header + "\n\n" + strings.Join(rows, "\n\n")
}

// Week renders seven columns, Sunday to Saturday, each listing that day's
// tasks by start time.
func Week(th theme.Theme, selected, today time.Time, tasks []task.Task, width int) string {
	start := selected.AddDate(0, 0, -int(selected.Weekday()))
	col := width / 7
	if col < 8 {
		col = 8
	}
	names := strings.Fields(Header)
	cols := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		date := task.FormatDate(d)
		head := fmt.Sprintf("%s %d", names[i], d.Day())
		style := th.Panel.Title
		switch date {
		case task.FormatDate(selected):
			style = th.Timeline.Cursor
		case task.FormatDate(today):
			style = th.Panel.Accent
		}
		lines := []string{style.Render(head)}
		on := task.ForDate(tasks, date)
		task.SortByStart(on)
		for _, t := range on {
			text := truncate.StringWithTail(t.StartTime+" "+t.Title, uint(col-1), "…")
			if t.Completed {
				text = th.Timeline.Done.Render(text)
			} else {
				text = th.CategoryStyle(t.Category).Render(text)
			}
			lines = append(lines, text)
		}
		cols = append(cols, lipgloss.NewStyle().Width(col).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func mark(days map[int]Day, first, selected, today time.Time) {
	if first.Year() == today.Year() && first.Month() == today.Month() {
		d := days[today.Day()]
		d.Day, d.IsToday = today.Day(), true
		days[today.Day()] = d
	}
	if first.Year() == selected.Year() && first.Month() == selected.Month() {
		d := days[selected.Day()]
		d.Day, d.IsSelected = selected.Day(), true
		days[selected.Day()] = d
	}
}
