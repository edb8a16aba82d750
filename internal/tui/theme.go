package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must stay readable on both light and dark terminal backgrounds, so
// everything uses adaptive colors and "faint" styling is only applied on dark
// backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func hasDarkBackground() bool {
	return termenv.HasDarkBackground()
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if hasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent     lipgloss.TerminalColor = ac("27", "75") // blue
	colorDanger     lipgloss.TerminalColor = ac("160", "203")

	styleListHeader = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	styleItem       = lipgloss.NewStyle().Foreground(colorSurfaceFg)
	styleSelected   = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	styleGhost      = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Italic(true)
	styleIndicator  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleMeta       = lipgloss.NewStyle().Foreground(colorMuted)
	styleFlash      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleWarn       = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}
