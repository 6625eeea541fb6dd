package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")
	Muted     = lipgloss.Color("#6B7280")
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#E5E7EB")

	// One color per agent slot so a pipeline's three agents always read
	// distinctly, whatever their names.
	AgentColors = []lipgloss.Color{
		lipgloss.Color("#3B82F6"),
		lipgloss.Color("#F59E0B"),
		lipgloss.Color("#10B981"),
	}

	// Thought log styles
	AgentLabel = lipgloss.NewStyle().
			Bold(true)

	ThoughtType = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	ThoughtBody = lipgloss.NewStyle().
			Foreground(LightGray).
			PaddingLeft(2)

	FinalMarker = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Tab bar
	TabActive = lipgloss.NewStyle().
			Foreground(White).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2)

	// Form styles
	FormLabel = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	FormHint = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	InputBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Result panel
	ResultBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	StatusBarStreaming = lipgloss.NewStyle().
				Foreground(Primary).
				Padding(0, 1)

	StatusBarError = lipgloss.NewStyle().
			Foreground(Error).
			Padding(0, 1)

	// Header
	Header = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Padding(0, 1)

	// Cursor for streaming
	StreamingCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// AgentColor returns the color for the agent at position idx in its
// pipeline.
func AgentColor(idx int) lipgloss.Color {
	if idx < 0 {
		idx = 0
	}
	return AgentColors[idx%len(AgentColors)]
}
