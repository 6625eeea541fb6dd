// Package pipeline describes the four analysis pipelines exposed by the
// pricing demo backend. Each pipeline streams the thinking of a fixed set of
// agents and ends with one structured result buried in the final agent's
// metadata; the descriptors here tell the rest of the program which agents to
// expect and which metadata key carries the result.
package pipeline

// ID identifies one of the demo pipelines.
type ID string

const (
	VisualPricing  ID = "pricing"
	LaunchDetect   ID = "launch"
	CrisisDetect   ID = "crisis"
	MarketTrends   ID = "trends"
)

// Descriptor is the static description of one pipeline.
type Descriptor struct {
	ID        ID
	Title     string
	Agents    []string
	ResultKey string // metadata key holding the structured result
	Path      string // backend endpoint path
}

var descriptors = map[ID]Descriptor{
	VisualPricing: {
		ID:        VisualPricing,
		Title:     "Visual Pricing Analysis",
		Agents:    []string{"scout", "analyst", "strategist"},
		ResultKey: "recommendation",
		Path:      "/api/pricing/analyze",
	},
	LaunchDetect: {
		ID:        LaunchDetect,
		Title:     "Launch Detection",
		Agents:    []string{"scanner", "validator", "assessor"},
		ResultKey: "assessment",
		Path:      "/api/launch/analyze",
	},
	CrisisDetect: {
		ID:        CrisisDetect,
		Title:     "Crisis Detection",
		Agents:    []string{"monitor", "investigator", "response"},
		ResultKey: "response_plan",
		Path:      "/api/crisis/analyze",
	},
	MarketTrends: {
		ID:        MarketTrends,
		Title:     "Market Trends Forecast",
		Agents:    []string{"observer", "analyst", "forecaster"},
		ResultKey: "forecast",
		Path:      "/api/trends/analyze",
	},
}

// order fixes the tab order in the UI.
var order = []ID{VisualPricing, LaunchDetect, CrisisDetect, MarketTrends}

// Get returns the descriptor for id. The second return is false for an
// unknown pipeline.
func Get(id ID) (Descriptor, bool) {
	d, ok := descriptors[id]
	return d, ok
}

// All returns the pipeline descriptors in display order.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(order))
	for _, id := range order {
		out = append(out, descriptors[id])
	}
	return out
}
