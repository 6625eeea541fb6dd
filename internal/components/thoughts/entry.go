package thoughts

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"pricepulse/internal/sse"
	"pricepulse/internal/styles"
)

// Entry is one agent thought as displayed, fragments already coalesced.
type Entry struct {
	Agent   string
	Type    sse.ThoughtType
	Content string
	IsFinal bool
}

// render renders one entry. agentIdx positions the agent in its pipeline and
// picks its color; streaming appends the cursor to the last entry.
func (e Entry) render(width, agentIdx int, streaming bool) string {
	var sb strings.Builder

	label := styles.AgentLabel.Foreground(styles.AgentColor(agentIdx)).Render(e.Agent)
	sb.WriteString(label)
	if e.Type != "" {
		sb.WriteString(" ")
		sb.WriteString(styles.ThoughtType.Render(string(e.Type)))
	}
	if e.IsFinal {
		sb.WriteString(" ")
		sb.WriteString(styles.FinalMarker.Render("✓"))
	}
	sb.WriteString("\n")

	content := e.Content
	if streaming {
		content += styles.StreamingCursor.Render("▊")
	}
	sb.WriteString(styles.ThoughtBody.Width(width - 2).Render(content))

	return sb.String()
}

// renderMarkdown renders markdown content for the terminal.
func renderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content, err
	}
	return r.Render(content)
}
