package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// laneColors is the terminal-side lane palette, index-aligned with
// layout.DefaultPalette so the TUI gutter and the SVG agree on which branch
// is which color.
var laneColors = []lipgloss.Color{
	lipgloss.Color("75"),  // blue
	lipgloss.Color("214"), // orange
	lipgloss.Color("35"),  // green
	lipgloss.Color("167"), // red
	lipgloss.Color("139"), // purple
	lipgloss.Color("73"),  // teal
	lipgloss.Color("220"), // yellow
	lipgloss.Color("217"), // pink
}

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHash        = lipgloss.NewStyle().Foreground(colorGray)
	styleSelected    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHead        = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleTag         = lipgloss.NewStyle().Foreground(colorYellow)
)

// laneStyle returns the terminal style for a lane column.
func laneStyle(column int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(laneColors[column%len(laneColors)])
}

// =============================================================================
// Icons and Output Helpers
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

func printSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconError.Render(iconError), fmt.Sprintf(format, args...))
}
