package pipeline_test

import (
	"encoding/json"
	"strings"
	"testing"

	"pricepulse/internal/pipeline"
)

func TestDescriptors(t *testing.T) {
	all := pipeline.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 pipelines, got %d", len(all))
	}

	keys := map[pipeline.ID]string{
		pipeline.VisualPricing: "recommendation",
		pipeline.LaunchDetect:  "assessment",
		pipeline.CrisisDetect:  "response_plan",
		pipeline.MarketTrends:  "forecast",
	}

	for id, want := range keys {
		d, ok := pipeline.Get(id)
		if !ok {
			t.Fatalf("Get(%q) missing", id)
		}
		if d.ResultKey != want {
			t.Errorf("%s: result key = %q, want %q", id, d.ResultKey, want)
		}
		if len(d.Agents) != 3 {
			t.Errorf("%s: expected 3 agents, got %d", id, len(d.Agents))
		}
		if !strings.HasPrefix(d.Path, "/api/") {
			t.Errorf("%s: unexpected path %q", id, d.Path)
		}
	}

	if _, ok := pipeline.Get("bogus"); ok {
		t.Error("Get() should reject unknown pipeline")
	}
}

func TestRenderResultTyped(t *testing.T) {
	raw := json.RawMessage(`{"recommended_price":24.99,"confidence":0.8,"strategy":"decrease","risk_level":"low","price_change_percent":-7.4,"key_factors":["competitor undercut"]}`)

	out := pipeline.RenderResult(pipeline.VisualPricing, raw)
	if !strings.Contains(out, "24.99") || !strings.Contains(out, "decrease") {
		t.Errorf("rendered recommendation missing fields:\n%s", out)
	}
	if !strings.Contains(out, "competitor undercut") {
		t.Errorf("rendered recommendation missing key factors:\n%s", out)
	}
}

func TestRenderResultFallback(t *testing.T) {
	raw := json.RawMessage(`{"something":"else"}`)
	out := pipeline.RenderResult("bogus", raw)
	if !strings.Contains(out, "```json") {
		t.Errorf("expected JSON fallback, got:\n%s", out)
	}
}
