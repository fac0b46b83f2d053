package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todue/internal/pref"
)

// palette holds the colors of one display mode.
type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	success lipgloss.Color
}

var (
	lightPalette = palette{
		text:    lipgloss.Color("#111827"),
		muted:   lipgloss.Color("#6B7280"),
		accent:  lipgloss.Color("#3B82F6"),
		success: lipgloss.Color("#22C55E"),
	}
	darkPalette = palette{
		text:    lipgloss.Color("#F9FAFB"),
		muted:   lipgloss.Color("#9CA3AF"),
		accent:  lipgloss.Color("#60A5FA"),
		success: lipgloss.Color("#4ADE80"),
	}

	todayColor   = lipgloss.Color("#F97316")
	overdueColor = lipgloss.Color("#EF4444")
)

type styles struct {
	title   lipgloss.Style
	text    lipgloss.Style
	done    lipgloss.Style
	check   lipgloss.Style
	date    lipgloss.Style
	today   lipgloss.Style
	overdue lipgloss.Style
	muted   lipgloss.Style
	cursor  lipgloss.Style
	input   lipgloss.Style
	focused lipgloss.Style
	notice  lipgloss.Style
}

func newStyles(theme pref.Theme) styles {
	p := lightPalette
	if theme == pref.ThemeDark {
		p = darkPalette
	}
	base := lipgloss.NewStyle()
	return styles{
		title:   base.Foreground(p.text).Bold(true),
		text:    base.Foreground(p.text),
		done:    base.Foreground(p.muted).Strikethrough(true),
		check:   base.Foreground(p.success).Bold(true),
		date:    base.Foreground(p.muted),
		today:   base.Foreground(todayColor).Bold(true),
		overdue: base.Foreground(overdueColor).Bold(true),
		muted:   base.Foreground(p.muted),
		cursor:  base.Foreground(p.accent).Bold(true),
		input:   base.Foreground(p.muted),
		focused: base.Foreground(p.accent).Bold(true),
		notice:  base.Foreground(p.accent),
	}
}

func themeIcon(theme pref.Theme) string {
	if theme == pref.ThemeDark {
		return "☀ light mode (t)"
	}
	return "☾ dark mode (t)"
}
