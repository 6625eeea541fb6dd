// Package client talks to the pricing demo backend. Each pipeline method
// issues one streaming request and returns a Run that surfaces agent
// thoughts, the structured result, and the terminal status.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pricepulse/internal/pipeline"
	"pricepulse/internal/sse"
)

// Client is the API client for the pricing demo backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout for non-streaming requests.
// Streaming requests never time out; they end with the stream.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for stream diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(client *Client) {
		client.logger = l
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HealthCheck probes the backend.
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// AnalyzePricing starts a visual pricing analysis run.
func (c *Client) AnalyzePricing(ctx context.Context, req PricingRequest) (*Run, error) {
	params := url.Values{}
	params.Set("product_name", req.ProductName)
	params.Set("price", strconv.FormatFloat(req.Price, 'f', -1, 64))
	if req.Currency != "" {
		params.Set("currency", req.Currency)
	}
	if len(req.Features) > 0 {
		params.Set("features", strings.Join(req.Features, ","))
	}
	setSimulate(params, req.Simulate)

	return c.startRun(ctx, pipeline.VisualPricing, params, req.Image)
}

// DetectLaunch starts a launch detection run.
func (c *Client) DetectLaunch(ctx context.Context, req LaunchRequest) (*Run, error) {
	params := url.Values{}
	params.Set("competitor_name", req.CompetitorName)
	params.Set("your_product", req.YourProduct)
	setSimulate(params, req.Simulate)

	return c.startRun(ctx, pipeline.LaunchDetect, params, req.Image)
}

// DetectCrisis starts a crisis detection run.
func (c *Client) DetectCrisis(ctx context.Context, req CrisisRequest) (*Run, error) {
	params := url.Values{}
	params.Set("product_name", req.ProductName)
	setSimulate(params, req.Simulate)

	return c.startRun(ctx, pipeline.CrisisDetect, params, nil)
}

// ForecastTrends starts a market trends run.
func (c *Client) ForecastTrends(ctx context.Context, req TrendsRequest) (*Run, error) {
	params := url.Values{}
	params.Set("product_name", req.ProductName)
	if req.Timeframe != "" {
		params.Set("timeframe", req.Timeframe)
	}
	setSimulate(params, req.Simulate)

	return c.startRun(ctx, pipeline.MarketTrends, params, nil)
}

func setSimulate(params url.Values, simulate bool) {
	if simulate {
		params.Set("simulate", "true")
	}
}

// startRun issues the streaming request and wires the response body into a
// Run. With an image the parameters travel as multipart form fields,
// otherwise as query parameters.
func (c *Client) startRun(ctx context.Context, id pipeline.ID, params url.Values, img *ImageAttachment) (*Run, error) {
	desc, ok := pipeline.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown pipeline %q", id)
	}

	runCtx, cancel := context.WithCancel(ctx)

	req, err := c.buildStreamRequest(runCtx, desc.Path, params, img)
	if err != nil {
		cancel()
		return nil, err
	}

	// Streaming responses outlive any sane timeout; use a dedicated client.
	streamClient := &http.Client{Transport: c.httpClient.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	run := newRun(id, cancel)

	go func() {
		defer resp.Body.Close()

		consumer := &sse.Consumer{
			ResultKey: desc.ResultKey,
			OnThought: run.onThought,
			OnResult:  run.onResult,
			Logger:    c.logger,
		}
		run.finish(consumer.Consume(runCtx, resp.Body))
	}()

	return run, nil
}

func (c *Client) buildStreamRequest(ctx context.Context, path string, params url.Values, img *ImageAttachment) (*http.Request, error) {
	var req *http.Request
	var err error

	if img != nil {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		for key, vals := range params {
			for _, v := range vals {
				if werr := w.WriteField(key, v); werr != nil {
					return nil, fmt.Errorf("write form field: %w", werr)
				}
			}
		}
		if werr := w.WriteField("image_type", img.Type); werr != nil {
			return nil, fmt.Errorf("write form field: %w", werr)
		}

		name := img.Filename
		if name == "" {
			name = "screenshot." + img.Type
		}
		part, werr := w.CreateFormFile("image", name)
		if werr != nil {
			return nil, fmt.Errorf("create form file: %w", werr)
		}
		if _, werr := part.Write(img.Data); werr != nil {
			return nil, fmt.Errorf("write image: %w", werr)
		}
		if werr := w.Close(); werr != nil {
			return nil, fmt.Errorf("close multipart writer: %w", werr)
		}

		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	return req, nil
}
