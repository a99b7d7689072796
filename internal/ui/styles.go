package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the startup banner
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - title, border
	MutedColor   = lipgloss.Color("#626262") // Gray - keys
	TextColor    = lipgloss.Color("#FFFFFF") // White - values
)

// Layout constants
const (
	MinTerminalWidth = 40 // Minimum supported terminal width
	DefaultWidth     = 80 // Width used when not attached to a terminal
)

// Banner styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 2)
)

// GetTerminalWidth returns the current terminal width, or DefaultWidth when
// stdout is not a terminal (piped into a harness log, usually).
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}
