package terminal

import "github.com/charmbracelet/lipgloss"

// Color scheme for console output.
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")).Bold(true)
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3F3F46"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A1A1AA"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
)
