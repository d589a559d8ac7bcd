package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Bar renders a horizontal progress bar width cells wide. percent is
// clamped to [0, 1]; widths below 4 are raised to 4.
func Bar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * percent)
	filled = min(max(filled, 0), width)

	return lipgloss.NewStyle().Foreground(Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("░", width-filled))
}

// Rule renders a divider line.
func Rule(width int) string {
	return Divider.Render(strings.Repeat("─", width))
}
