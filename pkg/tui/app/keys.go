package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeline"
)

func (m *Model) handleKeyPress(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.stopWatch()
		*cmds = append(*cmds, tea.Quit)
		return
	}
	switch m.mode {
	case modeInsert:
		m.handleInsertKey(msg, cmds)
	case modeConfirm:
		m.handleConfirmKey(msg, cmds)
	case modeJournal:
		m.handleJournalKey(msg, cmds)
	case modeSettings:
		m.handleSettingsKey(msg, cmds)
	case modeHelp:
		switch msg.String() {
		case "q", "esc", "?":
			m.mode = modeNormal
		}
	default:
		m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "q":
		m.stopWatch()
		*cmds = append(*cmds, tea.Quit)
	case "?":
		m.mode = modeHelp
	case "a", "i", "/":
		*cmds = append(*cmds, m.beginInsert(""))
	case "n":
		hour := m.now.Hour()
		if m.view == viewTimeline {
			hour = m.day.CursorHour()
		}
		*cmds = append(*cmds, m.beginInsert(timeline.SlotPrefill(hour)))
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "tab":
		if m.view == viewTimeline {
			m.day.NextTask(1)
		} else {
			m.list.Move(1)
		}
	case "shift+tab":
		if m.view == viewTimeline {
			m.day.NextTask(-1)
		} else {
			m.list.Move(-1)
		}
	case "h", "left":
		*cmds = append(*cmds, m.shiftDate(-1))
	case "l", "right":
		*cmds = append(*cmds, m.shiftDate(1))
	case "t":
		m.planner.Today()
		m.refresh()
		m.day.JumpTo(m.now.Hour())
		*cmds = append(*cmds, m.scheduleSuggest())
	case "v":
		m.view = (m.view + 1) % view(len(viewNames))
	case "1", "2", "3", "4", "5":
		m.view = view(msg.String()[0] - '1')
	case "enter", " ", "x":
		*cmds = append(*cmds, m.toggleSelected())
	case "d", "delete":
		m.requestDelete()
	case "f":
		*cmds = append(*cmds, m.toggleFocus())
	case "F":
		m.focus.Reset()
		m.focusGen++
	case "J":
		m.openJournal()
	case "S", ",":
		m.openSettings()
	case "D":
		m.toggleDark()
	case "r":
		*cmds = append(*cmds, m.loadCmd())
	}
}

func (m *Model) moveCursor(delta int) {
	if m.view == viewTimeline {
		m.day.Move(delta)
		return
	}
	m.list.Move(delta)
}

func (m *Model) shiftDate(days int) tea.Cmd {
	m.planner.ShiftDate(days)
	m.refresh()
	return m.scheduleSuggest()
}

// selected is the task under the cursor of the active view.
func (m *Model) selected() (task.Task, bool) {
	switch m.view {
	case viewTimeline:
		return m.day.Selected()
	case viewList:
		return m.list.Selected()
	}
	return task.Task{}, false
}

func (m *Model) beginInsert(prefill string) tea.Cmd {
	m.mode = modeInsert
	m.input.SetValue(prefill)
	m.input.Focus()
	return nil
}

func (m *Model) handleInsertKey(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.endInsert()
	case "enter":
		*cmds = append(*cmds, m.submitQuickAdd())
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) endInsert() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

// submitQuickAdd sends the input to the planner. The task appears once the
// gateway has stored it; the input is kept until then.
func (m *Model) submitQuickAdd() tea.Cmd {
	if m.adding {
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.endInsert()
		return nil
	}
	m.adding = true
	m.addText = text
	m.status = "解析中..."
	p, ctx := m.planner, m.ctx
	return func() tea.Msg {
		t, err := p.QuickAdd(ctx, text)
		return addedMsg{task: t, err: err}
	}
}

// toggleSelected flips the selected task now and returns the command that
// confirms it.
func (m *Model) toggleSelected() tea.Cmd {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	mut := m.planner.BeginToggle(t.ID)
	m.refresh()
	return m.settle(mut)
}

func (m *Model) requestDelete() {
	t, ok := m.selected()
	if !ok {
		return
	}
	if m.planner.RequestDelete(t.ID) {
		m.mode = modeConfirm
		m.confirmFocus = 0
	}
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "y":
		*cmds = append(*cmds, m.confirmDelete())
	case "n", "esc", "q":
		m.cancelDelete()
	case "left", "right", "tab", "h", "l":
		m.confirmFocus = 1 - m.confirmFocus
	case "enter":
		if m.confirmFocus == 1 {
			*cmds = append(*cmds, m.confirmDelete())
		} else {
			m.cancelDelete()
		}
	}
}

func (m *Model) confirmDelete() tea.Cmd {
	mut := m.planner.BeginConfirmedDelete()
	m.mode = modeNormal
	m.refresh()
	return m.settle(mut)
}

func (m *Model) cancelDelete() {
	m.planner.CancelDelete()
	m.mode = modeNormal
}

func (m *Model) toggleFocus() tea.Cmd {
	m.focus.Toggle()
	m.focusGen++
	if !m.focus.Running() {
		return nil
	}
	m.status = ""
	return m.tickFocus()
}

func (m *Model) toggleDark() {
	m.setDark(!m.dark)
	if s := m.opts.Settings; s != nil {
		if err := s.SetDarkMode(m.dark); err != nil {
			m.status = "ERR: " + err.Error()
		}
	}
}

// journalPrompt is the sidebar line offering the journal.
func (m *Model) journalPrompt() string {
	if m.planner.JournalEligible() {
		return journalInvitation
	}
	return ""
}
