package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorGreen     = lipgloss.Color("#4ADE80")
	colorLightGrn  = lipgloss.Color("#86EFAC")
	colorYellow    = lipgloss.Color("#FDE047")
	colorRed       = lipgloss.Color("#F87171")
	colorBlue      = lipgloss.Color("#3B82F6")
	colorPurple    = lipgloss.Color("#A855F7")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorDarkGray).
			Padding(0, 1)

	focusedBorderStyle = borderStyle.
				BorderForeground(colorGreen)

	outputHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorLightGrn)

	fixedHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorYellow)

	correctedHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	diffAddedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	diffRemovedStyle = lipgloss.NewStyle().
				Foreground(colorRed)

	diffEqualStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)

// key hint colours follow the page's button colours
var actionStyles = map[string]lipgloss.Style{
	"explain":    lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	"debug":      lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	"complexity": lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
	"custom":     lipgloss.NewStyle().Foreground(colorPurple).Bold(true),
}

var keyStyle = lipgloss.NewStyle().Foreground(colorWhite)
