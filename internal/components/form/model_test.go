package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pricepulse/internal/pipeline"
)

func TestForPipelineFieldSets(t *testing.T) {
	cases := []struct {
		id   pipeline.ID
		keys []string
	}{
		{pipeline.VisualPricing, []string{KeyProductName, KeyPrice, KeyFeatures, KeyImagePath}},
		{pipeline.LaunchDetect, []string{KeyCompetitor, KeyYourProduct, KeyImagePath}},
		{pipeline.CrisisDetect, []string{KeyProductName}},
		{pipeline.MarketTrends, []string{KeyProductName, KeyTimeframe}},
	}

	for _, tc := range cases {
		m := ForPipeline(tc.id, 80)
		for _, key := range tc.keys {
			m.SetValue(key, "x")
		}
		vals := m.Values()
		if len(vals) != len(tc.keys) {
			t.Errorf("%s: %d fields accepted values, want %d", tc.id, len(vals), len(tc.keys))
		}
	}
}

func TestValuesOmitsEmptyFields(t *testing.T) {
	m := ForPipeline(pipeline.VisualPricing, 80)
	m.SetValue(KeyProductName, "Widget")

	vals := m.Values()
	if len(vals) != 1 {
		t.Fatalf("values = %v, want only product_name", vals)
	}
	if vals[KeyProductName] != "Widget" {
		t.Errorf("product_name = %q", vals[KeyProductName])
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := ForPipeline(pipeline.MarketTrends, 80)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focused != 1 {
		t.Fatalf("focused = %d after tab, want 1", m.focused)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focused != 0 {
		t.Fatalf("focused = %d after wrap, want 0", m.focused)
	}
}
