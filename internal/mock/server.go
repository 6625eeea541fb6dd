// Package mock implements a simulated pricing demo backend. It streams
// scripted multi-agent reasoning over SSE so the TUI can be demoed, and
// tested, without the real AI backend.
package mock

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tidwall/sjson"

	"pricepulse/internal/pipeline"
	"pricepulse/internal/sse"
)

// Server is the simulated backend.
type Server struct {
	port   int
	logger *slog.Logger

	// Delay paces the stream for a realistic demo feel. Zero disables
	// pacing, which tests rely on.
	Delay time.Duration
}

// NewServer creates a simulated backend listening on port.
func NewServer(port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		port:   port,
		logger: logger,
		Delay:  35 * time.Millisecond,
	}
}

// Start blocks serving HTTP.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("simulated backend listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the route tree; split out so tests can mount it on an
// httptest server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/api/pricing/analyze", s.streamPipeline(pipeline.VisualPricing))
	r.Post("/api/launch/analyze", s.streamPipeline(pipeline.LaunchDetect))
	r.Post("/api/crisis/analyze", s.streamPipeline(pipeline.CrisisDetect))
	r.Post("/api/trends/analyze", s.streamPipeline(pipeline.MarketTrends))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": "simulated",
	})
}

// streamPipeline streams the scripted run for one pipeline.
func (s *Server) streamPipeline(id pipeline.ID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		desc, _ := pipeline.Get(id)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		p := requestParams(r)
		s.logger.Info("simulated run started",
			"pipeline", id,
			"product", p.product,
			"competitor", p.competitor,
			"image", p.hasImage,
		)

		steps := scriptFor(id, p)
		for i, step := range steps {
			if r.Context().Err() != nil {
				s.logger.Info("simulated run cancelled", "pipeline", id)
				return
			}

			// Interleave a keep-alive comment now and then, as the real
			// backend does.
			if i > 0 && i%3 == 0 {
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			}

			s.streamStep(w, flusher, r, desc.ResultKey, step)
		}

		s.sendEvent(w, flusher, sse.Event{Done: true}, "", nil)
	}
}

// streamStep streams one scripted thought, fragmenting its content the way
// the model streams tokens. Only the last fragment of a final step carries
// is_final and the metadata result.
func (s *Server) streamStep(w http.ResponseWriter, flusher http.Flusher, r *http.Request, resultKey string, step scriptStep) {
	fragments := fragment(step.content, 5)
	for i, frag := range fragments {
		if r.Context().Err() != nil {
			return
		}

		last := i == len(fragments)-1
		ev := sse.Event{
			Agent:       step.agent,
			ThoughtType: step.thought,
			Content:     frag,
			IsFinal:     step.final && last,
		}

		key := ""
		var result any
		if step.final && last && step.result != nil {
			key = resultKey
			result = step.result
		}
		s.sendEvent(w, flusher, ev, key, result)

		if s.Delay > 0 {
			time.Sleep(s.Delay)
		}
	}
}

// sendEvent marshals the event and, when a result is attached, splices it
// into the metadata under the pipeline's result key.
func (s *Server) sendEvent(w http.ResponseWriter, flusher http.Flusher, ev sse.Event, resultKey string, result any) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("marshal event", "error", err)
		return
	}

	if resultKey != "" && result != nil {
		payload, err = sjson.SetBytes(payload, "metadata."+resultKey, result)
		if err != nil {
			s.logger.Error("attach result", "error", err)
			return
		}
	}

	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}

// fragment splits content into groups of n words, preserving spacing
// between fragments.
func fragment(content string, n int) []string {
	words := strings.Fields(content)
	if len(words) == 0 {
		return []string{content}
	}

	var out []string
	for i := 0; i < len(words); i += n {
		end := i + n
		if end > len(words) {
			end = len(words)
		}
		frag := strings.Join(words[i:end], " ")
		if end < len(words) {
			frag += " "
		}
		out = append(out, frag)
	}
	return out
}

// params are the request fields the scripts interpolate.
type params struct {
	product    string
	competitor string
	hasImage   bool
}

func requestParams(r *http.Request) params {
	p := params{
		product:    "your product",
		competitor: "the competitor",
	}

	// Image uploads arrive as multipart form data; everything else uses
	// query parameters.
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(8 << 20); err == nil {
			if _, _, err := r.FormFile("image"); err == nil {
				p.hasImage = true
			}
		}
	}

	get := func(key string) string {
		if v := r.FormValue(key); v != "" {
			return v
		}
		return r.URL.Query().Get(key)
	}

	if v := get("product_name"); v != "" {
		p.product = v
	}
	if v := get("your_product"); v != "" {
		p.product = v
	}
	if v := get("competitor_name"); v != "" {
		p.competitor = v
	}
	return p
}
