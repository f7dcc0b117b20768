package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorGreen     = lipgloss.Color("#98C379")
	ColorYellow    = lipgloss.Color("#E5C07B")
	ColorBlue      = lipgloss.Color("#61AFEF")
	ColorMagenta   = lipgloss.Color("#C678DD")
	ColorBorder    = lipgloss.Color("#3F4451")
)

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			PaddingLeft(1)

	TableBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	SelectedCountStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMagenta).
			Padding(1, 2)

	PopupTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)
)
