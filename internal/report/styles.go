package report

import "github.com/charmbracelet/lipgloss"

// Styles by role. Lipgloss degrades them to what the terminal supports.
var (
	StyleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	StyleFailure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	StyleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	StyleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	StyleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle renders text with style, or returns it untouched when
// colors are off.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
