package mock_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"pricepulse/internal/client"
	"pricepulse/internal/mock"
	"pricepulse/internal/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := mock.NewServer(0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Delay = 0
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	return client.New(srv.URL, client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestSimulatedPricingRun(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	run, err := c.AnalyzePricing(context.Background(), client.PricingRequest{
		ProductName: "AcousticPro Headphones",
		Price:       49.99,
		Simulate:    true,
	})
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	for range run.Events() {
	}
	if err := run.Wait(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := run.Status(); got != client.StatusCompleted {
		t.Fatalf("status = %v, want completed", got)
	}

	thoughts := run.Thoughts()
	if len(thoughts) == 0 {
		t.Fatal("no thoughts streamed")
	}
	agents := map[string]bool{}
	for _, th := range thoughts {
		agents[th.Agent] = true
	}
	for _, want := range []string{"scout", "analyst", "strategist"} {
		if !agents[want] {
			t.Errorf("no thoughts from agent %q", want)
		}
	}

	var rec pipeline.Recommendation
	if err := json.Unmarshal(run.Result(), &rec); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if rec.Strategy != "increase" {
		t.Errorf("strategy = %q, want increase", rec.Strategy)
	}
	if rec.RecommendedPrice <= 0 {
		t.Errorf("recommended price = %v, want > 0", rec.RecommendedPrice)
	}
}

func TestSimulatedRunsForAllPipelines(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	starts := map[pipeline.ID]func() (*client.Run, error){
		pipeline.VisualPricing: func() (*client.Run, error) {
			return c.AnalyzePricing(ctx, client.PricingRequest{ProductName: "Widget", Price: 10})
		},
		pipeline.LaunchDetect: func() (*client.Run, error) {
			return c.DetectLaunch(ctx, client.LaunchRequest{CompetitorName: "Rival Co", YourProduct: "Widget"})
		},
		pipeline.CrisisDetect: func() (*client.Run, error) {
			return c.DetectCrisis(ctx, client.CrisisRequest{ProductName: "Widget"})
		},
		pipeline.MarketTrends: func() (*client.Run, error) {
			return c.ForecastTrends(ctx, client.TrendsRequest{ProductName: "Widget"})
		},
	}

	for id, start := range starts {
		run, err := start()
		if err != nil {
			t.Fatalf("%s: start: %v", id, err)
		}
		for range run.Events() {
		}
		if err := run.Wait(); err != nil {
			t.Fatalf("%s: run failed: %v", id, err)
		}
		if run.Result() == nil {
			t.Errorf("%s: no result surfaced", id)
		}

		desc, _ := pipeline.Get(id)
		thoughts := run.Thoughts()
		if got := thoughts[len(thoughts)-1].Agent; got != desc.Agents[2] {
			t.Errorf("%s: last thought from %q, want %q", id, got, desc.Agents[2])
		}
	}
}

func TestSimulatedRunInterpolatesInput(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	run, err := c.DetectLaunch(context.Background(), client.LaunchRequest{
		CompetitorName: "Northwind Audio",
		YourProduct:    "AcousticPro",
	})
	if err != nil {
		t.Fatalf("DetectLaunch: %v", err)
	}
	for range run.Events() {
	}
	if err := run.Wait(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var all string
	for _, th := range run.Thoughts() {
		all += th.Content
	}
	if !strings.Contains(all, "Northwind Audio") {
		t.Error("competitor name never mentioned in the stream")
	}
	if !strings.Contains(all, "AcousticPro") {
		t.Error("product name never mentioned in the stream")
	}
}

func TestSimulatedPricingAcknowledgesImage(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	run, err := c.AnalyzePricing(context.Background(), client.PricingRequest{
		ProductName: "Widget",
		Price:       10,
		Image: &client.ImageAttachment{
			Data:     []byte{0x89, 'P', 'N', 'G'},
			Filename: "shelf.png",
			Type:     "png",
		},
	})
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	for range run.Events() {
	}
	if err := run.Wait(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var all string
	for _, th := range run.Thoughts() {
		all += th.Content
	}
	if !strings.Contains(all, "shelf photo") {
		t.Error("stream does not acknowledge the uploaded image")
	}
}

func TestSimulatedRunCancellation(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	run, err := c.DetectCrisis(context.Background(), client.CrisisRequest{ProductName: "Widget"})
	if err != nil {
		t.Fatalf("DetectCrisis: %v", err)
	}

	<-run.Events()
	run.Cancel()
	for range run.Events() {
	}

	if got := run.Status(); got != client.StatusCancelled && got != client.StatusCompleted {
		t.Fatalf("status = %v, want cancelled or completed", got)
	}
	if err := run.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	h, err := c.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
}
