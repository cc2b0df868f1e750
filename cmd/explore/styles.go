package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// StatusStyle for confirmations.
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#43a047"))
)

// FormatValueWithTrend formats the last value of a series with an arrow
// comparing it to the previous sample. Undefined values render as "-".
func FormatValueWithTrend(current, previous float64) string {
	if math.IsNaN(current) || math.IsInf(current, 0) {
		return "-"
	}

	valueStr := fmt.Sprintf("%.4f", current)

	if math.IsNaN(previous) || math.IsInf(previous, 0) {
		return valueStr
	}

	if current > previous {
		return valueStr + " ▲"
	} else if current < previous {
		return valueStr + " ▼"
	}

	return valueStr
}
