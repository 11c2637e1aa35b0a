package theme

import "github.com/charmbracelet/lipgloss"

// Color palette — minimalist, terminal-friendly.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorBorder    = lipgloss.Color("238") // Dark gray
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("229") // Yellow
	ColorBar       = lipgloss.Color("75")  // Light blue, chart bars
)

// Heat ramps from cold to hot for the reviewer/author matrix.
var Heat = []lipgloss.Color{
	lipgloss.Color("238"),
	lipgloss.Color("24"),
	lipgloss.Color("31"),
	lipgloss.Color("37"),
	lipgloss.Color("43"),
	lipgloss.Color("49"),
}

// Shared styles used across TUI components.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StyleSection = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleKPICard = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	StyleKPILabel = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleKPIValue = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	StyleNavActive = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	StyleNavInactive = lipgloss.NewStyle().
				Foreground(ColorMuted)
)
