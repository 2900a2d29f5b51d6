package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"remindo/internal/tracker"
)

type palette struct {
	fg, muted, accent, banner, alert, low, medium, high, bar string
}

var palettes = map[tracker.Theme]palette{
	tracker.ThemeLight: {
		fg: "235", muted: "245", accent: "25", banner: "130", alert: "160",
		low: "28", medium: "136", high: "160", bar: "25",
	},
	tracker.ThemeDark: {
		fg: "252", muted: "241", accent: "212", banner: "221", alert: "203",
		low: "114", medium: "221", high: "203", bar: "212",
	},
}

// Styles centralizes Lip Gloss styles for one theme.
type Styles struct {
	Theme     tracker.Theme
	BarColor  string
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Banner    lipgloss.Style
	FilterOn  lipgloss.Style
	FilterOff lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Priority  map[tracker.Priority]lipgloss.Style
	Label     lipgloss.Style
	Modal     lipgloss.Style
	Status    lipgloss.Style
}

func NewStyles(th tracker.Theme) Styles {
	p, ok := palettes[th]
	if !ok {
		th = tracker.ThemeLight
		p = palettes[th]
	}
	fg := lipgloss.Color(p.fg)
	return Styles{
		Theme:     th,
		BarColor:  p.bar,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Banner:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.banner)),
		FilterOn:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(p.accent)),
		FilterOff: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Row:       lipgloss.NewStyle().Foreground(fg),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
		Completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(p.muted)),
		Priority: map[tracker.Priority]lipgloss.Style{
			tracker.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.low)),
			tracker.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color(p.medium)),
			tracker.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.high)),
		},
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Width(10),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(p.alert)).
			Foreground(lipgloss.Color(p.alert)).
			Bold(true).
			Padding(1, 3),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Italic(true),
	}
}

// ResolveTheme maps the configured default ("auto", "light", "dark") to a
// theme, asking the terminal for its background when set to auto.
func ResolveTheme(setting string) tracker.Theme {
	if th, err := tracker.ParseTheme(setting); err == nil {
		return th
	}
	if strings.EqualFold(strings.TrimSpace(setting), "auto") && lipgloss.HasDarkBackground() {
		return tracker.ThemeDark
	}
	return tracker.ThemeLight
}

// ToggleLabel names the theme the toggle switches to.
func ToggleLabel(th tracker.Theme) string {
	if th == tracker.ThemeDark {
		return "☀ Light Mode"
	}
	return "☾ Dark Mode"
}
