package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/dayplan/pkg/task"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark bool

	Footer   FooterTheme
	Panel    PanelTheme
	Timeline TimelineTheme
	Modal    ModalTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Notice lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
}

// TimelineTheme styles the day view.
type TimelineTheme struct {
	Label    lipgloss.Style
	Slot     lipgloss.Style
	Cursor   lipgloss.Style
	Now      lipgloss.Style
	Done     lipgloss.Style
	Ongoing  lipgloss.Style
	Category map[task.Category]lipgloss.Style
}

// ModalTheme styles centered overlays: delete confirmation, journal, settings.
type ModalTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Button  lipgloss.Style
	Danger  lipgloss.Style
	Focused lipgloss.Style
}

type palette struct {
	text, muted, faint, accent string
	border, danger, now        string
	category                   map[task.Category]string
}

var light = palette{
	text:   "235",
	muted:  "244",
	faint:  "250",
	accent: "63",
	border: "252",
	danger: "160",
	now:    "196",
	category: map[task.Category]string{
		task.Work:   "33",
		task.Study:  "135",
		task.Health: "35",
		task.Life:   "208",
	},
}

var dark = palette{
	text:   "252",
	muted:  "245",
	faint:  "240",
	accent: "141",
	border: "238",
	danger: "203",
	now:    "204",
	category: map[task.Category]string{
		task.Work:   "75",
		task.Study:  "177",
		task.Health: "114",
		task.Life:   "215",
	},
}

// Default returns the light theme.
func Default() Theme {
	return For(false)
}

// For returns the dark or light theme.
func For(darkMode bool) Theme {
	p := light
	if darkMode {
		p = dark
	}
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }

	categories := make(map[task.Category]lipgloss.Style, len(p.category))
	for cat, col := range p.category {
		categories[cat] = lipgloss.NewStyle().Foreground(c(col)).Bold(true)
	}

	button := lipgloss.NewStyle().Padding(0, 2).Foreground(c(p.muted))
	return Theme{
		Dark: darkMode,
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(c(p.muted)),
			Status: lipgloss.NewStyle().Foreground(c(p.muted)),
			Notice: lipgloss.NewStyle().Foreground(c(p.danger)).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c(p.border)).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true).Foreground(c(p.text)),
			Body:   lipgloss.NewStyle().Foreground(c(p.text)),
			Muted:  lipgloss.NewStyle().Foreground(c(p.muted)),
			Accent: lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
		},
		Timeline: TimelineTheme{
			Label:    lipgloss.NewStyle().Foreground(c(p.muted)),
			Slot:     lipgloss.NewStyle().Foreground(c(p.faint)),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Now:      lipgloss.NewStyle().Foreground(c(p.now)).Bold(true),
			Done:     lipgloss.NewStyle().Foreground(c(p.muted)).Strikethrough(true),
			Ongoing:  lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
			Category: categories,
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c(p.accent)).
				Padding(1, 2),
			Title:   lipgloss.NewStyle().Bold(true).Foreground(c(p.text)),
			Body:    lipgloss.NewStyle().Foreground(c(p.text)),
			Button:  button,
			Danger:  button.Copy().Foreground(c(p.danger)).Bold(true),
			Focused: button.Copy().Reverse(true),
		},
	}
}

// CategoryStyle returns the style for c, plain text when unknown.
func (t Theme) CategoryStyle(c task.Category) lipgloss.Style {
	if s, ok := t.Timeline.Category[c]; ok {
		return s
	}
	return t.Panel.Body
}
