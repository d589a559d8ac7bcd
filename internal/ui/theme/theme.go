// Package theme holds the terminal styles shared by every command.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Title    = fg(Primary).Bold(true)
	Subtitle = fg(TextDim)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Label    = fg(Secondary).Bold(true)

	// Answer feedback.
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)
	Highlight = fg(Accent).Bold(true)

	// Card frames the end-of-session summary.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
	Divider = fg(Border)
)
