package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar for the month holding date. Days with tasks are
// bold and the selected day is underlined.
func (pp *PrettyPrint) Month(date string, tasks []task.Task) {
	first, days := timeutil.MonthDays(date)

	count := make([]int, days)
	for _, t := range tasks {
		d, err := task.ParseDate(t.Date)
		if err != nil || d.Year() != first.Year() || d.Month() != first.Month() {
			continue
		}
		count[d.Day()-1]++
	}
	selected := -1
	if d, err := task.ParseDate(date); err == nil {
		selected = d.Day() - 1
	}
	pp.PrintMonthCount(first, count, selected)
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int, selected int) {
	out := pp.out()
	d := then.Weekday()

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%d-%02d", then.Year(), int(then.Month()))
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	sel := color.New(color.Bold, color.Underline)

	for i := range count {
		printer := l1
		if count[i] > 0 {
			printer = l2
		}
		if i == selected {
			printer = sel
		}
		_, _ = printer.Fprintf(out, "%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

// Week prints the seven days starting at the Sunday on or before date, with
// each day's tasks.
func (pp *PrettyPrint) Week(date string, tasks []task.Task) {
	d, err := task.ParseDate(date)
	if err != nil {
		return
	}
	start := d.AddDate(0, 0, -int(d.Weekday()))
	for i := 0; i < 7; i++ {
		day := task.FormatDate(start.AddDate(0, 0, i))
		on := task.ForDate(tasks, day)
		task.SortByStart(on)
		pp.DayTitle(day, len(on))
		pp.Tasks(on...)
	}
}
