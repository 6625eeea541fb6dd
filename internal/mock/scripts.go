package mock

import (
	"fmt"

	"pricepulse/internal/pipeline"
	"pricepulse/internal/sse"
)

// scriptStep is one scripted thought. A final step carries the pipeline
// result attached under the pipeline's metadata key.
type scriptStep struct {
	agent   string
	thought sse.ThoughtType
	content string
	final   bool
	result  any
}

// scriptFor builds the scripted run for one pipeline, interpolating the
// caller's product and competitor names so the demo follows the input.
func scriptFor(id pipeline.ID, p params) []scriptStep {
	switch id {
	case pipeline.VisualPricing:
		return pricingScript(p)
	case pipeline.LaunchDetect:
		return launchScript(p)
	case pipeline.CrisisDetect:
		return crisisScript(p)
	case pipeline.MarketTrends:
		return trendsScript(p)
	}
	return nil
}

func pricingScript(p params) []scriptStep {
	source := "product listing data"
	if p.hasImage {
		source = "the uploaded shelf photo"
	}
	return []scriptStep{
		{"scout", sse.ThoughtObservation,
			fmt.Sprintf("Extracting competitor prices for %s from %s.", p.product, source), false, nil},
		{"scout", sse.ThoughtObservation,
			"Identified 4 comparable listings in the same category, prices ranging 39.99 to 54.99.", true, nil},
		{"analyst", sse.ThoughtAnalysis,
			fmt.Sprintf("%s sits 8%% above the category median but carries two differentiating features competitors lack.", p.product), false, nil},
		{"analyst", sse.ThoughtHypothesis,
			"Demand appears price-inelastic in this band; a moderate increase should not move volume.", true, nil},
		{"strategist", sse.ThoughtDecision,
			"Weighing margin gain against the risk of undercutting by the cheapest rival.", false, nil},
		{"strategist", sse.ThoughtRecommendation,
			"Recommend a measured price increase with a review in two weeks.", true,
			pipeline.Recommendation{
				RecommendedPrice:   52.99,
				Confidence:         0.82,
				Strategy:           "increase",
				RiskLevel:          "low",
				PriceChangePercent: 6.0,
				KeyFactors: []string{
					"above-median feature set",
					"inelastic demand in the 45-55 band",
					"no rival promotion detected",
				},
				Reasoning: "Feature advantage supports a premium; competitors show no sign of a price war.",
			}},
	}
}

func launchScript(p params) []scriptStep {
	return []scriptStep{
		{"scanner", sse.ThoughtObservation,
			fmt.Sprintf("Scanning %s announcements, retail listings and press coverage from the last 72 hours.", p.competitor), false, nil},
		{"scanner", sse.ThoughtObservation,
			"Found a new SKU with overlapping positioning and an aggressive introductory price.", true, nil},
		{"validator", sse.ThoughtAnalysis,
			"Cross-checking the listing against distributor feeds to rule out a regional test.", false, nil},
		{"validator", sse.ThoughtAnalysis,
			"Listing is live in three major retailers; this is a full launch, not a pilot.", true, nil},
		{"assessor", sse.ThoughtHypothesis,
			fmt.Sprintf("The launch targets the same segment as %s and could pull price-sensitive buyers.", p.product), false, nil},
		{"assessor", sse.ThoughtRecommendation,
			"Classifying this as a medium threat requiring a response within the week.", true,
			pipeline.ThreatAssessment{
				ThreatLevel: "medium",
				ThreatScore: 58,
				Urgency:     "this_week",
				ImpactAreas: []string{"entry-level segment", "online channel"},
				AtRiskSegments: []string{
					"price-sensitive first-time buyers",
				},
				ImmediateActions: []string{
					"verify introductory price duration",
					"brief the channel team",
				},
				StrategicActions: []string{
					"prepare a bundle offer for the entry segment",
				},
				MonitoringPriorities: []string{
					"competitor review velocity",
					"introductory price expiry",
				},
			}},
	}
}

func crisisScript(p params) []scriptStep {
	return []scriptStep{
		{"monitor", sse.ThoughtObservation,
			fmt.Sprintf("Review sentiment for %s dropped sharply over the last 48 hours.", p.product), false, nil},
		{"monitor", sse.ThoughtObservation,
			"Negative mentions cluster around shipping damage; volume is 4x baseline.", true, nil},
		{"investigator", sse.ThoughtAnalysis,
			"Sampling the flagged reviews to separate a packaging defect from a carrier problem.", false, nil},
		{"investigator", sse.ThoughtHypothesis,
			"Damage pattern is consistent across carriers, which points at the new packaging batch.", true, nil},
		{"response", sse.ThoughtDecision,
			"Containment first, then customer outreach for affected orders.", false, nil},
		{"response", sse.ThoughtRecommendation,
			"Issuing a response plan centred on the packaging batch recall.", true,
			pipeline.ResponsePlan{
				CrisisTitle: "Packaging Damage Spike",
				ImmediateActions: []string{
					"quarantine the suspect packaging batch",
					"proactively contact buyers from the affected window",
				},
				StakeholdersToNotify: []string{
					"fulfilment lead",
					"customer support",
					"packaging supplier",
				},
				CommunicationStrategy: "Acknowledge publicly, offer replacements before customers ask.",
				EstimatedRecoveryTime: "10-14 days",
				RiskIfUnaddressed:     "Rating falls below 4.0 and the listing loses its category badge.",
			}},
	}
}

func trendsScript(p params) []scriptStep {
	return []scriptStep{
		{"observer", sse.ThoughtObservation,
			fmt.Sprintf("Collecting search volume, category sales and social signals for %s.", p.product), false, nil},
		{"observer", sse.ThoughtObservation,
			"Search interest up 12% month over month, with seasonality still two months out.", true, nil},
		{"analyst", sse.ThoughtAnalysis,
			"The uplift predates the seasonal curve, suggesting genuine category growth.", false, nil},
		{"analyst", sse.ThoughtHypothesis,
			"Two adjacent categories show the same pattern; this looks like a durable shift.", true, nil},
		{"forecaster", sse.ThoughtDecision,
			"Combining the growth signal with inventory lead times.", false, nil},
		{"forecaster", sse.ThoughtRecommendation,
			"Forecasting continued upward demand over the next quarter.", true,
			pipeline.Forecast{
				Direction:         "up",
				Confidence:        74,
				Timeframe:         "next_quarter",
				RecommendedAction: "increase inventory ahead of the seasonal peak",
				KeyDrivers: []string{
					"pre-seasonal search growth",
					"adjacent category momentum",
				},
				Risks: []string{
					"supply lead times eat into the window",
					"competitor capacity expansion",
				},
			}},
	}
}
