package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexpop/internal/core"
)

// Theme holds the terminal styles for the board and the menus.
type Theme struct {
	Name string

	// Screen cell colors
	Cells map[core.Color]lipgloss.Style

	// Menus and scoreboard
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Best        lipgloss.Style
	Help        lipgloss.Style
	Border      lipgloss.Color
	Accent      lipgloss.Color
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// ClassicTheme uses the 16 ANSI colors, so the terminal palette decides the
// final look.
func ClassicTheme() Theme {
	return Theme{
		Name: "classic",
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorRed:           fg("1"),
			core.ColorGreen:         fg("2"),
			core.ColorYellow:        fg("3"),
			core.ColorBlue:          fg("4"),
			core.ColorMagenta:       fg("5"),
			core.ColorCyan:          fg("6"),
			core.ColorWhite:         fg("7"),
			core.ColorBrightRed:     fg("9"),
			core.ColorBrightGreen:   fg("10"),
			core.ColorBrightYellow:  fg("11"),
			core.ColorBrightBlue:    fg("12"),
			core.ColorBrightMagenta: fg("13"),
			core.ColorBrightCyan:    fg("14"),
			core.ColorBrightWhite:   fg("15"),
			core.ColorOrange:        fg("208"),
			core.ColorGray:          fg("245"),
		},
		Title:       fg("229").Bold(true),
		Subtitle:    fg("245"),
		ItemNormal:  fg("252"),
		ItemActive:  fg("226").Bold(true),
		Description: fg("245"),
		Best:        fg("51"),
		Help:        fg("241"),
		Border:      lipgloss.Color("240"),
		Accent:      lipgloss.Color("57"),
	}
}

// NeonTheme swaps the piece colors for saturated 256-color shades.
func NeonTheme() Theme {
	t := ClassicTheme()
	t.Name = "neon"
	t.Cells = map[core.Color]lipgloss.Style{}
	for c, s := range ClassicTheme().Cells {
		t.Cells[c] = s
	}
	t.Cells[core.ColorBrightRed] = fg("199")
	t.Cells[core.ColorBrightGreen] = fg("118")
	t.Cells[core.ColorBrightBlue] = fg("33")
	t.Cells[core.ColorBrightYellow] = fg("227")
	t.Cells[core.ColorMagenta] = fg("171")
	t.Cells[core.ColorCyan] = fg("87")
	t.Title = fg("87").Bold(true)
	t.ItemActive = fg("199").Bold(true)
	t.Accent = lipgloss.Color("91")
	return t
}

var themes = map[string]func() Theme{
	"classic": ClassicTheme,
	"neon":    NeonTheme,
}

// ThemeNames returns the known theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName looks up a theme.
func ThemeByName(name string) (Theme, bool) {
	mk, ok := themes[name]
	if !ok {
		return Theme{}, false
	}
	return mk(), true
}

// Global theme, changed by the CLI before any program starts.
var theme = ClassicTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// CurrentTheme returns the global theme.
func CurrentTheme() Theme {
	return theme
}

// cellStyle returns the style for a screen color, falling back to the
// default style.
func (t Theme) cellStyle(c core.Color) lipgloss.Style {
	if s, ok := t.Cells[c]; ok {
		return s
	}
	return t.Cells[core.ColorDefault]
}
