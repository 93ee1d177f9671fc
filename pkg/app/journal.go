package app

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
)

const (
	// SuggestNoKey prompts the user to configure a model.
	SuggestNoKey = "配置 AI 实验室后，我将成为您的智能助理 🤖"
	// SuggestEmptyDay invites planning an empty day.
	SuggestEmptyDay = "这一天还没有安排，点击上方输入框开始规划吧 🌱"
	// SuggestLoading is shown before the first suggestion arrives.
	SuggestLoading = "正在为您同步云端数据... ✨"

	// EveningHour is when the journal is offered.
	EveningHour = 18
)

// ErrNoJournal means the planner has nowhere to keep journal records.
var ErrNoJournal = errors.New("app: no journal store configured")

// Suggest returns the advice line for the viewed date.
func (p *Planner) Suggest(ctx context.Context) string {
	a := p.assistant()
	if a == nil {
		return SuggestNoKey
	}
	visible := p.Visible()
	if len(visible) == 0 {
		return SuggestEmptyDay
	}
	return a.Suggest(ctx, visible)
}

// JournalEligible reports whether today's journal can be written: it is
// evening, today is selected and something was completed.
func (p *Planner) JournalEligible() bool {
	if p.now().Hour() < EveningHour || !p.IsToday() {
		return false
	}
	for _, t := range p.Visible() {
		if t.Completed {
			return true
		}
	}
	return false
}

// Journal records the viewed day's mood and reflection, with an illustration
// when the assistant can draw one. A missing image is not an error.
func (p *Planner) Journal(ctx context.Context, mood task.Mood, reflection string) (store.Day, error) {
	if p.Days == nil {
		return store.Day{}, ErrNoJournal
	}
	date := p.Selected()
	day, _ := p.Days.Day(date)
	day.Mood = mood
	if reflection != "" {
		day.Reflection = reflection
	}
	if a := p.assistant(); a != nil {
		if img := a.JournalImage(ctx, p.Visible(), string(mood)); img != "" {
			day.Image = img
		}
	}
	if err := p.Days.SaveDay(date, day); err != nil {
		return store.Day{}, err
	}
	return day, nil
}

// Day returns the saved journal record for the viewed date.
func (p *Planner) Day() (store.Day, bool) {
	if p.Days == nil {
		return store.Day{}, false
	}
	return p.Days.Day(p.Selected())
}
