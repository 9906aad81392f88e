// ABOUTME: Shared lipgloss palette and styles for CLI output and the TUI
// ABOUTME: Status colors live here so badges, panels, and forms agree

package styles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Primary = lipgloss.Color("#7C3AED")
	Accent  = lipgloss.Color("#8B5CF6")
	Muted   = lipgloss.Color("#6B7280")
	Text    = lipgloss.Color("#F9FAFB")

	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Danger  = lipgloss.Color("#EF4444")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	// ErrorPanel frames failed requests
	ErrorPanel = Panel.
			BorderForeground(Danger)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(Muted).
		Width(10)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// Field renders one label/value row
func Field(label, value string) string {
	return Label.Render(label) + ValueStyle.Render(value)
}
