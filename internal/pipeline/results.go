package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Recommendation is the structured result of the visual pricing pipeline.
type Recommendation struct {
	RecommendedPrice   float64  `json:"recommended_price"`
	Confidence         float64  `json:"confidence"`
	Strategy           string   `json:"strategy"` // increase, decrease, maintain
	RiskLevel          string   `json:"risk_level"`
	PriceChangePercent float64  `json:"price_change_percent"`
	KeyFactors         []string `json:"key_factors"`
	Reasoning          string   `json:"reasoning"`
}

// ThreatAssessment is the structured result of the launch detection pipeline.
type ThreatAssessment struct {
	ThreatLevel          string   `json:"threat_level"` // none, low, medium, high, critical
	ThreatScore          int      `json:"threat_score"`
	Urgency              string   `json:"urgency"`
	ImpactAreas          []string `json:"impact_areas"`
	AtRiskSegments       []string `json:"at_risk_segments"`
	ImmediateActions     []string `json:"immediate_actions"`
	StrategicActions     []string `json:"strategic_actions"`
	MonitoringPriorities []string `json:"monitoring_priorities"`
}

// ResponsePlan is the structured result of the crisis detection pipeline.
type ResponsePlan struct {
	CrisisTitle           string   `json:"crisis_title"`
	ImmediateActions      []string `json:"immediate_actions"`
	StakeholdersToNotify  []string `json:"stakeholders_to_notify"`
	CommunicationStrategy string   `json:"communication_strategy"`
	EstimatedRecoveryTime string   `json:"estimated_recovery_time"`
	RiskIfUnaddressed     string   `json:"risk_if_unaddressed"`
}

// Forecast is the structured result of the market trends pipeline.
type Forecast struct {
	Direction         string   `json:"direction"` // strong_up, up, stable, down, strong_down
	Confidence        int      `json:"confidence"`
	Timeframe         string   `json:"timeframe"`
	RecommendedAction string   `json:"recommended_action"`
	KeyDrivers        []string `json:"key_drivers"`
	Risks             []string `json:"risks"`
}

// RenderResult decodes a pipeline's raw result and renders it as markdown for
// display. Unknown pipelines or undecodable results fall back to pretty JSON.
func RenderResult(id ID, raw json.RawMessage) string {
	switch id {
	case VisualPricing:
		var r Recommendation
		if err := json.Unmarshal(raw, &r); err == nil {
			return r.Markdown()
		}
	case LaunchDetect:
		var a ThreatAssessment
		if err := json.Unmarshal(raw, &a); err == nil {
			return a.Markdown()
		}
	case CrisisDetect:
		var p ResponsePlan
		if err := json.Unmarshal(raw, &p); err == nil {
			return p.Markdown()
		}
	case MarketTrends:
		var f Forecast
		if err := json.Unmarshal(raw, &f); err == nil {
			return f.Markdown()
		}
	}

	var buf strings.Builder
	buf.WriteString("```json\n")
	buf.Write(raw)
	buf.WriteString("\n```")
	return buf.String()
}

// Markdown renders the recommendation for the result panel.
func (r Recommendation) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Pricing Recommendation\n\n")
	fmt.Fprintf(&b, "- **Recommended price:** %.2f (%+.1f%%)\n", r.RecommendedPrice, r.PriceChangePercent)
	fmt.Fprintf(&b, "- **Strategy:** %s\n", r.Strategy)
	fmt.Fprintf(&b, "- **Risk:** %s\n", r.RiskLevel)
	fmt.Fprintf(&b, "- **Confidence:** %.0f%%\n", r.Confidence*100)
	writeList(&b, "Key factors", r.KeyFactors)
	return b.String()
}

// Markdown renders the threat assessment for the result panel.
func (a ThreatAssessment) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Threat Assessment\n\n")
	fmt.Fprintf(&b, "- **Threat level:** %s (score %d)\n", a.ThreatLevel, a.ThreatScore)
	fmt.Fprintf(&b, "- **Urgency:** %s\n", a.Urgency)
	writeList(&b, "Immediate actions", a.ImmediateActions)
	writeList(&b, "Strategic actions", a.StrategicActions)
	writeList(&b, "Watch", a.MonitoringPriorities)
	return b.String()
}

// Markdown renders the response plan for the result panel.
func (p ResponsePlan) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", orDefault(p.CrisisTitle, "Crisis Response Plan"))
	fmt.Fprintf(&b, "- **Recovery estimate:** %s\n", p.EstimatedRecoveryTime)
	fmt.Fprintf(&b, "- **Risk if unaddressed:** %s\n", p.RiskIfUnaddressed)
	fmt.Fprintf(&b, "- **Communication:** %s\n", p.CommunicationStrategy)
	writeList(&b, "Immediate actions", p.ImmediateActions)
	writeList(&b, "Notify", p.StakeholdersToNotify)
	return b.String()
}

// Markdown renders the forecast for the result panel.
func (f Forecast) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Market Forecast\n\n")
	fmt.Fprintf(&b, "- **Direction:** %s\n", f.Direction)
	fmt.Fprintf(&b, "- **Confidence:** %d%%\n", f.Confidence)
	fmt.Fprintf(&b, "- **Timeframe:** %s\n", f.Timeframe)
	fmt.Fprintf(&b, "- **Action:** %s\n", f.RecommendedAction)
	writeList(&b, "Key drivers", f.KeyDrivers)
	writeList(&b, "Risks", f.Risks)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s**\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
