package color

import "github.com/charmbracelet/lipgloss"

var (
	Blue   = lipgloss.Color("12") // Bright blue
	Cyan   = lipgloss.Color("14") // Bright cyan
	Yellow = lipgloss.Color("11") // Bright yellow
	Orange = lipgloss.Color("3")  // Yellow/Orange
	Green  = lipgloss.Color("10") // Bright green
	White  = lipgloss.Color("15") // Bright white
	Black  = lipgloss.Color("0")  // Black

	// Report colors
	DarkGreen = lipgloss.Color("2")   // Dark green
	DarkRed   = lipgloss.Color("1")   // Dark red
	DarkGray  = lipgloss.Color("240") // Dark gray
)
