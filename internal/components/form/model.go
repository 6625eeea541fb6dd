// Package form is the per-pipeline input form. Each pipeline declares its
// own fields; the form handles focus movement and hands the values back as
// a flat map.
package form

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pricepulse/internal/pipeline"
	"pricepulse/internal/styles"
)

// Field keys shared with the client request builders.
const (
	KeyProductName = "product_name"
	KeyPrice       = "price"
	KeyFeatures    = "features"
	KeyCompetitor  = "competitor_name"
	KeyYourProduct = "your_product"
	KeyTimeframe   = "timeframe"
	KeyImagePath   = "image_path"
)

type field struct {
	key   string
	label string
	input textinput.Model
}

// Model holds the fields for one pipeline.
type Model struct {
	fields  []field
	focused int
	width   int
}

func newField(key, label, placeholder string, width int) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = width - 4
	return field{key: key, label: label, input: ti}
}

// ForPipeline builds the input form for the given pipeline.
func ForPipeline(id pipeline.ID, width int) Model {
	var fields []field
	switch id {
	case pipeline.VisualPricing:
		fields = []field{
			newField(KeyProductName, "Product", "AcousticPro Headphones", width),
			newField(KeyPrice, "Current price", "49.99", width),
			newField(KeyFeatures, "Features (comma separated)", "noise cancelling, 30h battery", width),
			newField(KeyImagePath, "Shelf photo (optional path)", "shelf.png", width),
		}
	case pipeline.LaunchDetect:
		fields = []field{
			newField(KeyCompetitor, "Competitor", "Northwind Audio", width),
			newField(KeyYourProduct, "Your product", "AcousticPro Headphones", width),
			newField(KeyImagePath, "Screenshot (optional path)", "launch.png", width),
		}
	case pipeline.CrisisDetect:
		fields = []field{
			newField(KeyProductName, "Product", "AcousticPro Headphones", width),
		}
	case pipeline.MarketTrends:
		fields = []field{
			newField(KeyProductName, "Product", "AcousticPro Headphones", width),
			newField(KeyTimeframe, "Timeframe", "next_quarter", width),
		}
	}

	m := Model{fields: fields, width: width}
	if len(m.fields) > 0 {
		m.fields[0].input.Focus()
	}
	return m
}

// Init initializes the form.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes key input to the focused field and moves focus on tab and
// arrow keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.moveFocus(1)
			return m, textinput.Blink
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, textinput.Blink
		}
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.fields[m.focused].input.Blur()
	m.focused = (m.focused + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focused].input.Focus()
}

// View renders the form.
func (m Model) View() string {
	var rows []string
	for i, f := range m.fields {
		label := styles.FormLabel.Render(f.label)
		if i != m.focused {
			label = styles.FormHint.Render(f.label)
		}
		rows = append(rows, label, styles.InputBorder.Width(m.width-2).Render(f.input.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Values returns the current field values keyed by field key. Empty fields
// are omitted.
func (m Model) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		if v := f.input.Value(); v != "" {
			out[f.key] = v
		}
	}
	return out
}

// SetValue sets a field's value, creating demo defaults or restoring state.
func (m *Model) SetValue(key, value string) {
	for i := range m.fields {
		if m.fields[i].key == key {
			m.fields[i].input.SetValue(value)
			return
		}
	}
}

// Focus focuses the first field.
func (m *Model) Focus() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.fields[m.focused].input.Blur()
	m.focused = 0
	m.fields[0].input.Focus()
	return textinput.Blink
}

// Blur removes focus from all fields.
func (m *Model) Blur() {
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
}

// SetWidth updates the form width.
func (m *Model) SetWidth(width int) {
	m.width = width
	for i := range m.fields {
		m.fields[i].input.Width = width - 4
	}
}
