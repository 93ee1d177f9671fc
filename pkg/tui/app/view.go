package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
	"tableflip.dev/dayplan/pkg/tui/components/calendar"
)

const helpLine = "a 添加 · enter 完成 · d 删除 · h/l 换日 · v 视图 · f 专注 · J 复盘 · S 设置 · ? 帮助 · q 退出"

var helpRows = [][2]string{
	{"a i /", "快速添加"},
	{"n", "在光标时段添加"},
	{"j k", "移动光标"},
	{"tab", "下一个任务"},
	{"h l", "前一天 / 后一天"},
	{"t", "回到今天"},
	{"v 1-5", "切换视图"},
	{"enter x", "完成 / 取消完成"},
	{"d", "删除任务"},
	{"f F", "专注开始暂停 / 重置"},
	{"J", "记录今日闪光点"},
	{"S", settingsTitle},
	{"D", "深色模式"},
	{"r", "重新同步"},
	{"q", "退出"},
}

// View renders the current model state.
func (m *Model) View() string {
	body := m.mainView()
	if m.showSidebars() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.leftSidebar(), body, m.rightSidebar())
	}
	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.quickAdd(),
		body,
		m.footer(),
	)

	var overlay string
	switch m.mode {
	case modeConfirm:
		overlay = m.confirmView()
	case modeJournal:
		overlay = m.journalView()
	case modeSettings:
		overlay = m.settingsView()
	case modeHelp:
		overlay = m.helpView()
	}
	if overlay == "" || m.width == 0 || m.height == 0 {
		if overlay != "" {
			return screen + "\n" + overlay
		}
		return screen
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

func (m *Model) header() string {
	date := m.planner.Selected()
	title := m.theme.Panel.Title.Render(date + " " + timeutil.Weekday(date))
	if m.planner.IsToday() {
		title += " " + m.theme.Panel.Accent.Render("今天")
	}
	var tabs []string
	for i, name := range viewNames {
		if view(i) == m.view {
			tabs = append(tabs, m.theme.Timeline.Cursor.Render(" "+name+" "))
		} else {
			tabs = append(tabs, m.theme.Panel.Muted.Render(" "+name+" "))
		}
	}
	return title + "  " + strings.Join(tabs, "")
}

func (m *Model) quickAdd() string {
	if m.mode != modeInsert && m.input.Value() == "" {
		return m.theme.Panel.Muted.Render(m.input.Prompt + QuickAddPlaceholder)
	}
	return m.input.View()
}

func (m *Model) mainView() string {
	var s string
	switch m.view {
	case viewTimeline:
		s = m.day.View(m.theme)
	case viewList:
		s = m.list.View(m.theme)
	default:
		selected, _ := task.ParseDate(m.planner.Selected())
		all := m.planner.Cache.Snapshot()
		switch m.view {
		case viewWeek:
			s = calendar.Week(m.theme, selected, m.now, all, m.mainWidth())
		case viewMonth:
			s = calendar.Month(m.theme, selected, m.now, all)
		case viewYear:
			s = calendar.Year(m.theme, selected, m.now, all)
		}
	}
	return m.theme.Panel.Frame.Copy().Width(m.mainWidth()).Render(s)
}

func (m *Model) leftSidebar() string {
	th := m.theme
	visible := m.planner.Visible()
	sum := task.Summarize(visible)

	var b strings.Builder
	b.WriteString(th.Panel.Title.Render(task.PeriodAt(m.now.Hour()).Label()) + "\n\n")
	fmt.Fprintf(&b, "完成率 %s\n", th.Panel.Accent.Render(fmt.Sprintf("%d%%", sum.Rate)))
	b.WriteString(th.Panel.Muted.Render(fmt.Sprintf("%d / %d", sum.Completed, sum.Total)) + "\n\n")
	for _, c := range task.AllCategories() {
		fmt.Fprintf(&b, "%s %d\n", th.CategoryStyle(c).Render("● "+string(c)), sum.ByCategory[c])
	}
	return th.Panel.Frame.Copy().Width(leftWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) rightSidebar() string {
	th := m.theme
	var b strings.Builder

	b.WriteString(th.Panel.Title.Render("专注") + "\n")
	state := "暂停"
	if m.focus.Running() {
		state = "进行中"
	}
	b.WriteString(th.Panel.Accent.Render(m.focus.String()) + " " + th.Panel.Muted.Render(state) + "\n\n")

	b.WriteString(th.Panel.Title.Render("💡 建议") + "\n")
	b.WriteString(th.Panel.Body.Render(wordwrap.String(m.suggestion, rightWidth-2)) + "\n")

	if m.hasRecord {
		b.WriteString("\n" + th.Panel.Title.Render(journalTitle+" "+string(m.record.Mood)) + "\n")
		if m.record.Reflection != "" {
			b.WriteString(th.Panel.Body.Render(wordwrap.String(m.record.Reflection, rightWidth-2)) + "\n")
		}
		if m.record.Image != "" {
			b.WriteString(th.Panel.Muted.Render("[今日画卷]") + "\n")
		}
	} else if p := m.journalPrompt(); p != "" {
		b.WriteString("\n" + th.Panel.Accent.Render(p+" (J)") + "\n")
	}
	return th.Panel.Frame.Copy().Width(rightWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) footer() string {
	var line string
	switch {
	case m.notice != "":
		line = m.theme.Footer.Notice.Render(m.notice)
	case m.status != "":
		line = m.theme.Footer.Status.Render(m.status)
	}
	help := m.theme.Footer.Help.Render(helpLine)
	if m.width > 0 {
		help = truncate.StringWithTail(help, uint(m.width), "…")
	}
	if line == "" {
		return help
	}
	return line + "\n" + help
}

func (m *Model) button(label string, focused, danger bool) string {
	st := m.theme.Modal.Button
	if danger {
		st = m.theme.Modal.Danger
	}
	if focused {
		st = st.Copy().Inherit(m.theme.Modal.Focused)
	}
	return st.Render(label)
}

func (m *Model) confirmView() string {
	title := ""
	if id, ok := m.planner.PendingDelete(); ok {
		if t, ok := m.planner.Cache.Get(id); ok {
			title = t.Title
		}
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.button(confirmCancel, m.confirmFocus == 0, false),
		"  ",
		m.button(confirmOK, m.confirmFocus == 1, true),
	)
	return m.theme.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Modal.Title.Render(confirmTitle),
		m.theme.Modal.Body.Render(title),
		"",
		buttons,
	))
}

func (m *Model) journalView() string {
	var faces []string
	for i, md := range moods {
		faces = append(faces, m.button(string(md), i == m.journal.mood, false))
	}
	hint := "tab 心情 · enter 保存 · esc 取消"
	if m.journal.saving {
		hint = "正在生成今日画卷..."
	}
	return m.theme.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Modal.Title.Render(journalTitle),
		strings.Join(faces, " "),
		"",
		m.journal.input.View(),
		"",
		m.theme.Panel.Muted.Render(hint),
	))
}

func (m *Model) settingsView() string {
	f := &m.settings
	label := func(field int, name string) string {
		st := m.theme.Modal.Body
		if f.field == field {
			st = m.theme.Modal.Focused
		}
		return st.Render(fmt.Sprintf("%-8s", name))
	}
	var providers []string
	for i, p := range ai.AllProviders() {
		providers = append(providers, m.button(string(p), i == f.provider, false))
	}
	return m.theme.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Modal.Title.Render(settingsTitle),
		"",
		label(fieldProvider, "服务商")+" "+strings.Join(providers, " "),
		label(fieldBaseURL, "Base URL")+" "+f.inputs[fieldBaseURL].View(),
		label(fieldModel, "模型")+" "+f.inputs[fieldModel].View(),
		label(fieldKey, "API Key")+" "+f.inputs[fieldKey].View(),
		"",
		m.theme.Panel.Muted.Render("tab 切换 · ←/→ 服务商 · enter 保存 · esc 取消"),
	))
}

func (m *Model) helpView() string {
	var b strings.Builder
	for _, r := range helpRows {
		fmt.Fprintf(&b, "%s  %s\n", m.theme.Panel.Accent.Render(fmt.Sprintf("%-8s", r[0])), r[1])
	}
	return m.theme.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Modal.Title.Render("快捷键"),
		"",
		strings.TrimRight(b.String(), "\n"),
	))
}
