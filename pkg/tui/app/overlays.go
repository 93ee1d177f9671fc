package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/task"
)

const (
	journalInvitation  = "夜色温柔，复盘今日？"
	journalTitle       = "记录今日闪光点"
	journalPlaceholder = "这一天最难忘的是..."

	confirmTitle  = "确定删除任务？"
	confirmCancel = "取消"
	confirmOK     = "确认删除"

	settingsTitle = "AI 实验室"
)

var moods = []task.Mood{task.Happy, task.Neutral, task.Sad}

type journalForm struct {
	mood   int
	input  textinput.Model
	saving bool
}

func (m *Model) openJournal() {
	if !m.planner.JournalEligible() {
		m.status = "晚上完成任务后再来复盘吧"
		return
	}
	in := textinput.New()
	in.Placeholder = journalPlaceholder
	in.CharLimit = 500
	in.Width = 40
	m.journal = journalForm{mood: 1, input: in}
	if m.hasRecord {
		m.journal.input.SetValue(m.record.Reflection)
		for i, md := range moods {
			if md == m.record.Mood {
				m.journal.mood = i
			}
		}
	}
	m.journal.input.Focus()
	m.mode = modeJournal
}

func (m *Model) closeJournal() {
	m.journal.input.Blur()
	if m.mode == modeJournal {
		m.mode = modeNormal
	}
}

func (m *Model) handleJournalKey(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	if m.journal.saving {
		return
	}
	switch msg.String() {
	case "esc":
		m.closeJournal()
	case "tab":
		m.journal.mood = (m.journal.mood + 1) % len(moods)
	case "shift+tab":
		m.journal.mood = (m.journal.mood + len(moods) - 1) % len(moods)
	case "enter":
		*cmds = append(*cmds, m.saveJournal())
	default:
		var cmd tea.Cmd
		m.journal.input, cmd = m.journal.input.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

// saveJournal records the mood and reflection. Drawing the illustration can
// take a while, so the form stays open until it is saved.
func (m *Model) saveJournal() tea.Cmd {
	m.journal.saving = true
	m.status = "正在生成今日画卷..."
	p, ctx := m.planner, m.ctx
	mood, text := moods[m.journal.mood], m.journal.input.Value()
	return func() tea.Msg {
		day, err := p.Journal(ctx, mood, text)
		return journalSavedMsg{day: day, err: err}
	}
}

const (
	fieldProvider = iota
	fieldBaseURL
	fieldModel
	fieldKey
	fieldCount
)

type settingsForm struct {
	provider int
	field    int
	inputs   [fieldCount]textinput.Model
}

func newSettingsInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 40
	in.SetValue(value)
	return in
}

func (m *Model) currentAIConfig() ai.Config {
	if m.opts.Settings != nil {
		return m.opts.Settings.AIConfig()
	}
	return ai.DefaultConfig()
}

func (m *Model) openSettings() {
	cfg := m.currentAIConfig()
	f := settingsForm{}
	for i, p := range ai.AllProviders() {
		if p == cfg.Provider {
			f.provider = i
		}
	}
	f.inputs[fieldBaseURL] = newSettingsInput("https://.../v1", cfg.BaseURL)
	f.inputs[fieldModel] = newSettingsInput("model id", cfg.ModelID)
	f.inputs[fieldKey] = newSettingsInput("API key", cfg.APIKey)
	f.inputs[fieldKey].EchoMode = textinput.EchoPassword
	m.settings = f
	m.mode = modeSettings
}

// setProvider switches provider and resets the base URL and model to its
// defaults. The key is kept.
func (f *settingsForm) setProvider(i int) {
	all := ai.AllProviders()
	f.provider = (i + len(all)) % len(all)
	base, model := ai.Defaults(all[f.provider])
	f.inputs[fieldBaseURL].SetValue(base)
	f.inputs[fieldModel].SetValue(model)
}

func (f *settingsForm) focus(field int) {
	f.field = (field + fieldCount) % fieldCount
	for i := fieldBaseURL; i < fieldCount; i++ {
		if i == f.field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *settingsForm) config() ai.Config {
	return ai.Config{
		Provider: ai.AllProviders()[f.provider],
		BaseURL:  f.inputs[fieldBaseURL].Value(),
		ModelID:  f.inputs[fieldModel].Value(),
		APIKey:   f.inputs[fieldKey].Value(),
	}
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	f := &m.settings
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
	case "tab", "down":
		f.focus(f.field + 1)
	case "shift+tab", "up":
		f.focus(f.field - 1)
	case "enter":
		*cmds = append(*cmds, m.saveSettings())
	case "left", "right":
		if f.field == fieldProvider {
			if msg.String() == "left" {
				f.setProvider(f.provider - 1)
			} else {
				f.setProvider(f.provider + 1)
			}
			return
		}
		fallthrough
	default:
		if f.field == fieldProvider {
			return
		}
		var cmd tea.Cmd
		f.inputs[f.field], cmd = f.inputs[f.field].Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) saveSettings() tea.Cmd {
	cfg := m.settings.config()
	m.mode = modeNormal
	if s := m.opts.Settings; s != nil {
		if err := s.SaveAIConfig(cfg); err != nil {
			m.status = "ERR: " + err.Error()
			return nil
		}
	}
	m.status = "已保存 " + settingsTitle + " 设置"
	m.suggestion = "正在连接 " + string(cfg.Provider) + "..."
	return m.rebuild(cfg)
}
