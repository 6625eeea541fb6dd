package client

// PricingRequest drives the visual pricing pipeline. The screenshot is
// optional; when present the request goes up as multipart form data,
// otherwise the product fields travel as query parameters.
type PricingRequest struct {
	ProductName string
	Price       float64
	Currency    string
	Features    []string
	Image       *ImageAttachment
	Simulate    bool
}

// LaunchRequest drives the launch detection pipeline.
type LaunchRequest struct {
	CompetitorName string
	YourProduct    string
	Image          *ImageAttachment
	Simulate       bool
}

// CrisisRequest drives the crisis detection pipeline.
type CrisisRequest struct {
	ProductName string
	Simulate    bool
}

// TrendsRequest drives the market trends pipeline.
type TrendsRequest struct {
	ProductName string
	Timeframe   string
	Simulate    bool
}

// ImageAttachment is a product screenshot to analyze.
type ImageAttachment struct {
	Data     []byte
	Filename string
	Type     string // png, jpeg, webp, gif
}

// HealthResponse is the backend health probe payload.
type HealthResponse struct {
	Status   string `json:"status"`
	Pipeline string `json:"pipeline,omitempty"`
	Version  string `json:"version,omitempty"`
}
