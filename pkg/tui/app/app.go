// Package app is the interactive day planner: a timeline or list of the
// selected day, a quick-add line, the summary and suggestion sidebars, the
// focus timer and the evening journal.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/dayplan/pkg/ai"
	planner "tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/cache"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeline"
	"tableflip.dev/dayplan/pkg/tui/components/daylist"
	"tableflip.dev/dayplan/pkg/tui/components/dayview"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

const (
	// QuickAddPlaceholder hints at the natural-language quick add.
	QuickAddPlaceholder = "尝试输入：'明天早上9点和团队开会'..."

	// SuggestDebounce is how long task changes settle before a new
	// suggestion is requested.
	SuggestDebounce = 1500 * time.Millisecond
	// NowInterval refreshes the current-time marker.
	NowInterval = time.Minute
	// FocusInterval advances the focus countdown.
	FocusInterval = time.Second
	// NoticeTTL is how long a failure notice stays up.
	NoticeTTL = 4 * time.Second
)

// Settings is the saved preference store the UI reads and writes.
type Settings interface {
	AIConfig() ai.Config
	SaveAIConfig(cfg ai.Config) error
	DarkMode() bool
	SetDarkMode(dark bool) error
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Options configures a Model.
type Options struct {
	Planner *planner.Planner
	// Settings may be nil; preferences are then kept in memory only.
	Settings Settings
	Axis     timeline.Axis
	// Rebuild makes an assistant for cfg, nil when it cannot make calls.
	Rebuild func(ctx context.Context, cfg ai.Config) planner.Assistant
	// LocalTasks reloads tasks when the state directory's task file changes.
	LocalTasks bool
	Now        func() time.Time
}

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeConfirm
	modeJournal
	modeSettings
	modeHelp
)

type view int

const (
	viewTimeline view = iota
	viewList
	viewWeek
	viewMonth
	viewYear
)

var viewNames = [...]string{"日程", "列表", "周", "月", "年"}

func (v view) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Model contains UI state.
type Model struct {
	ctx     context.Context
	opts    Options
	planner *planner.Planner
	theme   theme.Theme
	dark    bool

	mode mode
	view view

	input textinput.Model
	day   *dayview.Model
	list  *daylist.Model

	now time.Time

	focus    *schedule.Focus
	focusGen int

	suggestion string
	suggestGen int

	notice    string
	noticeGen int
	status    string
	adding    bool
	addText   string

	confirmFocus int
	journal      journalForm
	settings     settingsForm

	record    store.Day
	hasRecord bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	width  int
	height int
}

type loadedMsg struct{ err error }

type nowTickMsg time.Time

type focusTickMsg struct{ gen int }

type suggestDueMsg struct{ gen int }

type suggestionMsg struct {
	gen  int
	text string
}

type noticeExpiredMsg struct{ gen int }

type addedMsg struct {
	task *task.Task
	err  error
}

type settledMsg struct {
	mut *planner.Mutation
	err error
}

type journalSavedMsg struct {
	day store.Day
	err error
}

type assistantMsg struct {
	assistant planner.Assistant
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// New builds the model. ctx bounds every background call.
func New(ctx context.Context, opts Options) *Model {
	axis := opts.Axis
	if axis.EndHour == 0 {
		axis = timeline.DefaultAxis()
	}
	opts.Axis = axis

	in := textinput.New()
	in.Placeholder = QuickAddPlaceholder
	in.Prompt = "＋ "
	in.CharLimit = 200

	m := &Model{
		ctx:        ctx,
		opts:       opts,
		planner:    opts.Planner,
		input:      in,
		day:        dayview.New(axis),
		list:       daylist.New(),
		focus:      schedule.NewFocus(schedule.DefaultFocus),
		suggestion: planner.SuggestLoading,
	}
	if opts.Settings != nil {
		m.dark = opts.Settings.DarkMode()
	}
	m.theme = theme.For(m.dark)
	m.now = m.clock()
	m.refresh()
	m.day.JumpTo(m.now.Hour())
	return m
}

func (m *Model) clock() time.Time {
	if m.opts.Now != nil {
		return m.opts.Now()
	}
	return time.Now()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		m.waitForCache(),
		m.tickNow(),
		m.startWatchCmd(),
	)
}

// refresh re-derives the visible views from the cache.
func (m *Model) refresh() {
	visible := m.planner.Visible()
	now := m.now
	if !m.planner.IsToday() {
		now = time.Time{}
	}
	m.day.SetTasks(visible, now)
	m.list.SetTasks(visible, m.now)
	m.record, m.hasRecord = m.planner.Day()
}

func (m *Model) loadCmd() tea.Cmd {
	p, ctx := m.planner, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: p.Load(ctx)}
	}
}

func (m *Model) waitForCache() tea.Cmd {
	if m.planner.Cache == nil {
		return nil
	}
	ch := m.planner.Cache.Events()
	return func() tea.Msg {
		return <-ch
	}
}

func (m *Model) tickNow() tea.Cmd {
	return tea.Tick(NowInterval, func(t time.Time) tea.Msg {
		return nowTickMsg(t)
	})
}

func (m *Model) tickFocus() tea.Cmd {
	gen := m.focusGen
	return tea.Tick(FocusInterval, func(time.Time) tea.Msg {
		return focusTickMsg{gen: gen}
	})
}

// scheduleSuggest restarts the debounce; only the last request in a burst
// fetches.
func (m *Model) scheduleSuggest() tea.Cmd {
	m.suggestGen++
	gen := m.suggestGen
	return tea.Tick(SuggestDebounce, func(time.Time) tea.Msg {
		return suggestDueMsg{gen: gen}
	})
}

func (m *Model) fetchSuggestion(gen int) tea.Cmd {
	p, ctx := m.planner, m.ctx
	return func() tea.Msg {
		return suggestionMsg{gen: gen, text: p.Suggest(ctx)}
	}
}

func (m *Model) setNotice(n planner.Notice) tea.Cmd {
	if n == "" {
		return nil
	}
	m.notice = string(n)
	m.noticeGen++
	gen := m.noticeGen
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{gen: gen}
	})
}

func (m *Model) settle(mut *planner.Mutation) tea.Cmd {
	if mut == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return settledMsg{mut: mut, err: mut.Settle(ctx)}
	}
}

func (m *Model) rebuild(cfg ai.Config) tea.Cmd {
	if m.opts.Rebuild == nil {
		return nil
	}
	rebuild, ctx := m.opts.Rebuild, m.ctx
	return func() tea.Msg {
		return assistantMsg{assistant: rebuild(ctx, cfg)}
	}
}

func (m *Model) startWatchCmd() tea.Cmd {
	if m.opts.Settings == nil {
		return nil
	}
	settings, parent := m.opts.Settings, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := settings.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleWatchEvent(ev store.Event, cmds *[]tea.Cmd) {
	s := m.opts.Settings
	switch ev.Type {
	case store.EventAIConfigChanged:
		*cmds = append(*cmds, m.rebuild(s.AIConfig()))
	case store.EventDarkModeChanged:
		m.setDark(s.DarkMode())
	case store.EventDayChanged:
		if ev.Date == m.planner.Selected() {
			m.record, m.hasRecord = m.planner.Day()
		}
	case store.EventTasksChanged:
		if m.opts.LocalTasks {
			*cmds = append(*cmds, m.loadCmd())
		}
	default:
		m.setDark(s.DarkMode())
		*cmds = append(*cmds, m.rebuild(s.AIConfig()))
		if m.opts.LocalTasks {
			*cmds = append(*cmds, m.loadCmd())
		}
	}
}

func (m *Model) setDark(dark bool) {
	m.dark = dark
	m.theme = theme.For(dark)
}

// Update routes messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
	case loadedMsg:
		if msg.err != nil {
			cmds = append(cmds, m.setNotice(planner.NoticeLoadFailed))
		}
		m.refresh()
		cmds = append(cmds, m.scheduleSuggest())
	case cache.ChangeMsg:
		m.refresh()
		cmds = append(cmds, m.scheduleSuggest(), m.waitForCache())
	case nowTickMsg:
		m.now = time.Time(msg)
		m.refresh()
		cmds = append(cmds, m.tickNow())
	case focusTickMsg:
		if msg.gen == m.focusGen && m.focus.Running() {
			if m.focus.Tick() {
				m.status = "专注完成 🎉"
			} else {
				cmds = append(cmds, m.tickFocus())
			}
		}
	case suggestDueMsg:
		if msg.gen == m.suggestGen {
			cmds = append(cmds, m.fetchSuggestion(msg.gen))
		}
	case suggestionMsg:
		if msg.gen == m.suggestGen {
			m.suggestion = msg.text
		}
	case noticeExpiredMsg:
		if msg.gen == m.noticeGen {
			m.notice = ""
		}
	case addedMsg:
		m.adding = false
		switch {
		case errors.Is(msg.err, planner.ErrEmptyInput):
		case msg.err != nil:
			m.status = ""
			cmds = append(cmds, m.setNotice(planner.NoticeSyncFailed))
		default:
			if m.mode == modeInsert && strings.TrimSpace(m.input.Value()) == m.addText {
				m.endInsert()
			}
			m.status = "已添加：" + msg.task.Title
			if msg.task.Date != m.planner.Selected() {
				m.status += "（" + msg.task.Date + "）"
			}
		}
	case settledMsg:
		if msg.err != nil {
			cmds = append(cmds, m.setNotice(msg.mut.Notice()))
		}
		m.refresh()
	case journalSavedMsg:
		m.journal.saving = false
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
			break
		}
		m.record, m.hasRecord = msg.day, true
		m.status = "已记录今日闪光点 ✨"
		m.closeJournal()
	case assistantMsg:
		m.planner.SetAssistant(msg.assistant)
		cmds = append(cmds, m.scheduleSuggest())
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: watch " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		m.handleWatchEvent(msg.event, &cmds)
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyMsg:
		m.handleKeyPress(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

// applySizes recalculates component sizes from the terminal size.
func (m *Model) applySizes() {
	main := m.mainWidth()
	m.day.Width = main
	m.day.Height = m.bodyHeight()
	m.day.Move(0)
	m.list.Width = main
	m.input.Width = main - 4
}

const (
	leftWidth  = 26
	rightWidth = 32
	// Below this width the sidebars are hidden.
	sidebarMin = 100
)

func (m *Model) showSidebars() bool {
	return m.width >= sidebarMin
}

func (m *Model) mainWidth() int {
	if m.width == 0 {
		return 60
	}
	if m.showSidebars() {
		return m.width - leftWidth - rightWidth - 6
	}
	return m.width - 2
}

func (m *Model) bodyHeight() int {
	if m.height == 0 {
		return 0
	}
	// header, input, border and footer lines
	if h := m.height - 7; h > 3 {
		return h
	}
	return 3
}

// Run launches the interactive TUI program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
