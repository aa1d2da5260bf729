package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for metric severity
const (
	ColorHealthy  lipgloss.Color = "10" // Bright green
	ColorWarning  lipgloss.Color = "3"  // Yellow
	ColorCritical lipgloss.Color = "1"  // Red
	ColorAlert    lipgloss.Color = "9"  // Light red, whole-row alerts
)

// Text colors for content hierarchy
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)
