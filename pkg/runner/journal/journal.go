// Package journal records and shows the evening review.
package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/task"
)

const (
	// Invitation is shown when the journal opens.
	Invitation = "夜色温柔，复盘今日？"
	// Title heads the journal form.
	Title = "记录今日闪光点"
	// Placeholder hints at the reflection.
	Placeholder = "这一天最难忘的是..."
)

// ErrNotYet is returned when today's journal is not open and Force is unset.
var ErrNotYet = errors.New("journal: opens in the evening once a task is done, use --force to write anyway")

type Journal struct {
	Planner    *app.Planner
	Date       string
	Mood       task.Mood
	Reflection string
	// Show prints the saved record instead of writing one.
	Show  bool
	Force bool
}

func (n *Journal) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("journal: no planner")
	}
	if n.Date != "" {
		if err := n.Planner.SelectDate(n.Date); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{}
	date := n.Planner.Selected()

	if n.Show {
		day, ok := n.Planner.Day()
		if !ok {
			return fmt.Errorf("journal: nothing recorded for %s", date)
		}
		pp.Journal(date, day)
		return nil
	}

	if err := n.Planner.Load(ctx); err != nil {
		return err
	}
	if !n.Force && !n.Planner.JournalEligible() {
		return ErrNotYet
	}
	mood := n.Mood
	if mood == "" {
		mood = task.Neutral
	}
	_, _ = color.New(color.Italic).Fprintln(color.Output, Invitation)
	day, err := n.Planner.Journal(ctx, mood, n.Reflection)
	if err != nil {
		return err
	}
	pp.Title(Title)
	pp.Journal(date, day)
	return nil
}
