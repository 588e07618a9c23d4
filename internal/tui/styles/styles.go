// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines the palette and text styles used by the dashboard

package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary = lipgloss.Color("#0D9488") // Teal
	Accent  = lipgloss.Color("#2DD4BF") // Light teal
	Warning = lipgloss.Color("#F59E0B") // Amber
	Danger  = lipgloss.Color("#EF4444") // Red
	Success = lipgloss.Color("#10B981") // Green
	Muted   = lipgloss.Color("#6B7280") // Gray
	Text    = lipgloss.Color("#F9FAFB") // Light

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Danger).
			Padding(0, 1).
			Bold(true)
)

// Badge renders an unread counter, or a muted zero.
func Badge(count int) string {
	if count <= 0 {
		return Subtitle.Render("0")
	}
	return badgeStyle.Render(fmt.Sprintf("%d", count))
}
