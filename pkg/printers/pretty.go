package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var categoryColor = map[task.Category]color.Attribute{
	task.Work:   color.FgBlue,
	task.Study:  color.FgMagenta,
	task.Health: color.FgGreen,
	task.Life:   color.FgYellow,
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// DayTitle prints the date with its weekday and task count.
func (pp *PrettyPrint) DayTitle(date string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprintf(pp.out(), "%s %s", date, timeutil.Weekday(date))
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Tasks prints one row per task: time range, priority, category and title.
func (pp *PrettyPrint) Tasks(tasks ...task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		mark := "○"
		title := t.Title
		if t.Completed {
			mark = "✓"
			title = done.Sprint(t.Title)
		}
		cat := color.New(categoryColor[t.Category]).Sprint(string(t.Category))
		row := []interface{}{mark, t.StartTime + "-" + t.EndTime, t.Priority.Stars(), cat, title}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Periods prints the list view: tasks grouped into morning, afternoon and
// evening.
func (pp *PrettyPrint) Periods(groups []task.PeriodGroup) {
	h := color.New(color.Bold)
	for _, g := range groups {
		_, _ = h.Fprintln(pp.out(), g.Period.Label())
		pp.Tasks(g.Tasks...)
	}
}

// Summary prints the completion rate and per-category counts.
func (pp *PrettyPrint) Summary(s task.Summary) {
	b := color.New(color.Bold)
	_, _ = b.Fprintf(pp.out(), "完成率 %d%%", s.Rate)
	_, _ = fmt.Fprintf(pp.out(), " (%d/%d)\n", s.Completed, s.Total)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range task.AllCategories() {
		tbl.AddRow(color.New(categoryColor[c]).Sprint(string(c)), s.ByCategory[c])
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Suggestion prints the assistant's advice line.
func (pp *PrettyPrint) Suggestion(text string) {
	i := color.New(color.Italic)
	_, _ = i.Fprintf(pp.out(), "💡 %s\n", text)
}

// Journal prints a saved day record.
func (pp *PrettyPrint) Journal(date string, d store.Day) {
	pp.Title(date + " " + string(d.Mood))
	if d.Reflection != "" {
		_, _ = fmt.Fprintln(pp.out(), d.Reflection)
	}
	if d.Image != "" {
		f := color.New(color.Faint)
		_, _ = f.Fprintf(pp.out(), "[image %d bytes]\n", len(d.Image))
	}
}
