package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-formula/internal/types"
)

// Style definitions.
var (
	// TitleStyle for section headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// LabelStyle for names in tables.
	LabelStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for secondary text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	BuyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#43a047"))
	SellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

// Swatch renders a colored block for an overlay or strategy color.
func Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// FormatValue formats a series value, showing undefined samples as "-".
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}

	return fmt.Sprintf("%.4f", v)
}

// FormatSignal renders a signal kind with its color.
func FormatSignal(kind types.SignalKind) string {
	switch kind {
	case types.SignalKindBuy:
		return BuyStyle.Render("BUY ▲")
	case types.SignalKindSell:
		return SellStyle.Render("SELL ▼")
	default:
		return string(kind)
	}
}
