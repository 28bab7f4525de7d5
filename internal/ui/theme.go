package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kikehq/internal/store"
)

const (
	IconTask    = "📋"
	IconHabit   = "🔁"
	IconBook    = "📚"
	IconPlan    = "🗓"
	IconGoal    = "🎯"
	IconNotes   = "📝"
	IconMoney   = "💰"
	IconWeek    = "📈"
	IconProfile = "👤"
	IconTheme   = "🎨"
)

// Palette is the colour set of one theme.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
	Muted   lipgloss.Color
}

var palettes = map[store.Theme]Palette{
	// black, guards red, silver
	store.ThemePorscheDark: {
		Primary: lipgloss.Color("#D5001C"),
		Accent:  lipgloss.Color("#C0C0C0"),
		Good:    lipgloss.Color("#2ECC71"),
		Warn:    lipgloss.Color("#F4D03F"),
		Bad:     lipgloss.Color("#FF4D4D"),
		Muted:   lipgloss.Color("244"),
	},
	// navy, cream, forest, burgundy
	store.ThemeOldMoneyLight: {
		Primary: lipgloss.Color("#1F3A5F"),
		Accent:  lipgloss.Color("#8C6A3F"),
		Good:    lipgloss.Color("#2F5D50"),
		Warn:    lipgloss.Color("#B8860B"),
		Bad:     lipgloss.Color("#7B1E2B"),
		Muted:   lipgloss.Color("#7A7265"),
	},
}

type Styles struct {
	Title lipgloss.Style
	H2    lipgloss.Style
	Key   lipgloss.Style
	Muted lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Panel lipgloss.Style
}

// For returns the styles of t, falling back to the default theme.
func For(t store.Theme) Styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[store.ThemePorscheDark]
	}
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		H2:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Key:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),
		Good:  lipgloss.NewStyle().Bold(true).Foreground(p.Good),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(p.Warn),
		Bad:   lipgloss.NewStyle().Bold(true).Foreground(p.Bad),
		Panel: lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1),
	}
}

func (s Styles) Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return s.Title.Render(icon + title)
}

func (s Styles) LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", s.Key.Render(label+":"), value)
}

func (s Styles) Check(done bool) string {
	if done {
		return s.Good.Render("[x]")
	}
	return s.Muted.Render("[ ]")
}

func (s Styles) Tag(tag string) string {
	if tag == "" {
		return ""
	}
	return s.Muted.Render("#" + tag)
}

func (s Styles) BookStatus(status store.BookStatus) string {
	if status == store.BookCompleted {
		return s.Good.Render("completed")
	}
	return s.Warn.Render("in-progress")
}

// Amount renders a signed money value.
func (s Styles) Amount(v float64) string {
	text := fmt.Sprintf("%.2f", v)
	if v < 0 {
		return s.Bad.Render(text)
	}
	return s.Good.Render(text)
}
