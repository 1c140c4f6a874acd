package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorError    = "196" // Red for errors
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorVariable = "37"  // Teal for {variable} tokens
	ColorBorder   = "243" // Border gray
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	StepTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorActive))

	VariableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVariable)).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true)

	SelectionStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorSelected)).
			Foreground(lipgloss.Color(ColorWhite))

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)
)
