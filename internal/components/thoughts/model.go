// Package thoughts renders the live agent reasoning log and, once a run
// finishes, the structured result panel beneath it.
package thoughts

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pricepulse/internal/sse"
	"pricepulse/internal/styles"
)

// Model is the scrolling thought log for one pipeline run.
type Model struct {
	viewport  viewport.Model
	entries   []Entry
	agents    []string // pipeline agent order, fixes per-agent colors
	result    string   // rendered markdown, empty until the run surfaces one
	streaming bool
	width     int
	height    int
}

// New creates a thought log sized to width and height.
func New(width, height int) Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	vp.YPosition = 0

	return Model{
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			m.viewport.ViewUp()
		case "pgdown":
			m.viewport.ViewDown()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the component.
func (m Model) View() string {
	return m.viewport.View()
}

// SetAgents fixes the agent order for the current pipeline so each agent
// keeps a stable color across the run.
func (m *Model) SetAgents(agents []string) {
	m.agents = agents
}

// Append adds one streamed reasoning fragment. Consecutive fragments from
// the same agent and thought type extend the open entry; anything else
// starts a new one.
func (m *Model) Append(agent string, typ sse.ThoughtType, content string, isFinal bool) {
	if n := len(m.entries); n > 0 {
		last := &m.entries[n-1]
		if last.Agent == agent && last.Type == typ && !last.IsFinal {
			last.Content += content
			last.IsFinal = isFinal
			m.updateContent()
			return
		}
	}

	m.entries = append(m.entries, Entry{
		Agent:   agent,
		Type:    typ,
		Content: content,
		IsFinal: isFinal,
	})
	m.updateContent()
}

// SetResult attaches the run's structured result, already formatted as
// markdown, and renders it for the terminal.
func (m *Model) SetResult(markdown string) {
	rendered, err := renderMarkdown(markdown, m.width-4)
	if err != nil {
		rendered = markdown
	}
	m.result = strings.TrimSpace(rendered)
	m.updateContent()
}

// SetStreaming toggles the streaming cursor on the last entry.
func (m *Model) SetStreaming(streaming bool) {
	m.streaming = streaming
	m.updateContent()
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateContent()
}

// Clear resets the log for a fresh run.
func (m *Model) Clear() {
	m.entries = nil
	m.result = ""
	m.streaming = false
	m.viewport.SetContent("")
}

// IsEmpty reports whether nothing has been streamed yet.
func (m Model) IsEmpty() bool {
	return len(m.entries) == 0 && m.result == ""
}

// Entries returns the coalesced thought log.
func (m Model) Entries() []Entry {
	return m.entries
}

func (m *Model) agentIndex(agent string) int {
	for i, a := range m.agents {
		if a == agent {
			return i
		}
	}
	return 0
}

// updateContent rebuilds the viewport content and follows the tail.
func (m *Model) updateContent() {
	var content strings.Builder

	for i, e := range m.entries {
		streaming := m.streaming && i == len(m.entries)-1 && m.result == ""
		content.WriteString(e.render(m.width, m.agentIndex(e.Agent), streaming))
		content.WriteString("\n")
	}

	if m.result != "" {
		content.WriteString("\n")
		content.WriteString(styles.ResultBorder.Width(m.width - 2).Render(m.result))
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}
