package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pricepulse/internal/pipeline"
	"pricepulse/internal/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, styles.Header.Render("PricePulse"))
	sections = append(sections, m.renderTabs())

	logView := m.log.View()
	if m.log.IsEmpty() && m.state != StateStreaming {
		welcomeStyle := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Width(m.width).
			Align(lipgloss.Center).
			Padding(2, 0)
		logView = welcomeStyle.Render(welcomeText(m.pipelines[m.active]))
	}
	sections = append(sections, logView)

	if m.state == StateStreaming {
		waiting := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Muted).
			Padding(0, 1).
			Width(m.width - 2).
			Render("Agents at work... (Ctrl+C to cancel)")
		sections = append(sections, waiting)
	} else {
		sections = append(sections, m.forms[m.activeID()].View())
	}

	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, d := range m.pipelines {
		if i == m.active {
			tabs = append(tabs, styles.TabActive.Render(d.Title))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(d.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// formHeight is the number of terminal rows the idle form area occupies,
// used to size the thought log.
func (m Model) formHeight() int {
	f := m.forms[m.activeID()]
	return lipgloss.Height(f.View())
}

func (m Model) renderStatusBar() string {
	var status string
	var statusStyle lipgloss.Style

	switch m.state {
	case StateIdle:
		status = "Ready"
		statusStyle = styles.StatusBar
	case StateStreaming:
		status = "Streaming..."
		statusStyle = styles.StatusBarStreaming
	case StateError:
		status = fmt.Sprintf("Error: %v", m.err)
		statusStyle = styles.StatusBarError
	}

	left := statusStyle.Render(status)
	help := styles.StatusBar.Render("Enter: analyze • Ctrl+N/P: pipeline • Ctrl+C: quit")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(help)
	spacerWidth := m.width - leftWidth - rightWidth - 2
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := strings.Repeat(" ", spacerWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, help)
}

func welcomeText(d pipeline.Descriptor) string {
	return fmt.Sprintf("%s\n\nFill in the form below and press Enter.\nAgents: %s",
		d.Title, strings.Join(d.Agents, " → "))
}
