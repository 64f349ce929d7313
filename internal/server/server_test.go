package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eternisai/listing-optimizer/internal/config"
	apierrors "github.com/eternisai/listing-optimizer/internal/errors"
	"github.com/eternisai/listing-optimizer/internal/logger"
	"github.com/eternisai/listing-optimizer/internal/metrics"
	"github.com/eternisai/listing-optimizer/internal/optimizer"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"
)

type staticCompleter struct {
	content string
}

func (s staticCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: s.content}}},
	}, nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New(logger.Config{Level: slog.LevelError, Output: &bytes.Buffer{}})
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	service := optimizer.NewService(staticCompleter{content: "Title: Foo\nTags: a,b"},
		config.DefaultCompletionConfig(), config.DefaultPromptConfig(), log, m)

	return NewHTTPHandler(Options{
		Handler:     optimizer.NewHandler(service, log, m),
		Logger:      log,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSOrigins: []string{"https://www.depop.com"},
	})
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func assertJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	mediaType, _, err := mime.ParseMediaType(w.Header().Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		t.Errorf("expected application/json, got %q", w.Header().Get("Content-Type"))
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v (%s)", err, w.Body.String())
	}
	return body
}

func TestRoutes(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantKey    string
		wantValue  interface{}
	}{
		{"health on root", http.MethodGet, "/", "", http.StatusOK, "message", optimizer.HealthMessage},
		{"health alias", http.MethodGet, "/health", "", http.StatusOK, "message", optimizer.HealthMessage},
		{"optimize on root", http.MethodPost, "/", `{"title":"hoodie","brand":"Nike"}`, http.StatusOK, "optimized_output", "Title: Foo\nTags: a,b"},
		{"optimize on api path", http.MethodPost, OptimizePath, `{"title":"hoodie","brand":"Nike"}`, http.StatusOK, "optimized_output", "Title: Foo\nTags: a,b"},
		{"validation", http.MethodPost, OptimizePath, `{"brand":"Nike"}`, http.StatusBadRequest, "error", "Title and brand are required."},
		{"put not allowed", http.MethodPut, OptimizePath, "", http.StatusMethodNotAllowed, "error", "Method not allowed"},
		{"delete not allowed", http.MethodDelete, "/", "", http.StatusMethodNotAllowed, "error", "Method not allowed"},
		{"post to health not allowed", http.MethodPost, "/health", "", http.StatusMethodNotAllowed, "error", "Method not allowed"},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound, "error", "Not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}

			body := assertJSON(t, w)
			if body[tt.wantKey] != tt.wantValue {
				t.Errorf("expected %s=%v, got %v", tt.wantKey, tt.wantValue, body[tt.wantKey])
			}
			if w.Header().Get(logger.RequestIDHeader) == "" && tt.wantStatus != http.StatusNotFound && tt.wantStatus != http.StatusMethodNotAllowed {
				t.Error("missing request id header")
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)

	serve(h, http.MethodPost, OptimizePath, `{"title":"hoodie","brand":"Nike"}`)
	serve(h, http.MethodPost, OptimizePath, `{"title":"hoodie"}`)

	w := serve(h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	for _, line := range []string{
		`listing_optimizer_requests_total{method="POST",status="200"} 1`,
		`listing_optimizer_requests_total{method="POST",status="400"} 1`,
		`listing_optimizer_errors_total{class="validation"} 1`,
	} {
		if !strings.Contains(w.Body.String(), line) {
			t.Errorf("metrics output missing %q", line)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, OptimizePath, nil)
	req.Header.Set("Origin", "https://www.depop.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://www.depop.com" {
		t.Errorf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, OptimizePath, nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin for disallowed origin %q", got)
	}
}

func TestNewOptimizerHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Title: Bar\nTags: x"}}]}`))
	}))
	defer upstream.Close()

	cfg := &config.Config{
		GroqAPIKey:  "test-groq-key",
		GroqBaseURL: upstream.URL,
		Completion:  config.DefaultCompletionConfig(),
		Prompt:      config.DefaultPromptConfig(),
	}
	log := logger.New(logger.Config{Level: slog.LevelError, Output: &bytes.Buffer{}})

	h := NewOptimizerHandler(cfg, log, nil)
	resp := h.Handle(context.Background(), optimizer.Request{
		Method: http.MethodPost,
		Body:   []byte(`{"title":"hoodie","brand":"Nike"}`),
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", resp.StatusCode, resp.Body)
	}
	if body, ok := resp.Body.(optimizer.SuccessBody); !ok || body.OptimizedOutput != "Title: Bar\nTags: x" {
		t.Errorf("unexpected body %+v", resp.Body)
	}
}

func TestNewOptimizerHandlerWithoutKey(t *testing.T) {
	cfg := &config.Config{
		GroqBaseURL: config.DefaultGroqBaseURL,
		Completion:  config.DefaultCompletionConfig(),
		Prompt:      config.DefaultPromptConfig(),
	}
	log := logger.New(logger.Config{Level: slog.LevelError, Output: &bytes.Buffer{}})

	h := NewOptimizerHandler(cfg, log, nil)

	resp := h.Handle(context.Background(), optimizer.Request{Method: http.MethodGet})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected health to succeed, got %d", resp.StatusCode)
	}

	resp = h.Handle(context.Background(), optimizer.Request{
		Method: http.MethodPost,
		Body:   []byte(`{"title":"hoodie","brand":"Nike"}`),
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body, ok := resp.Body.(*apierrors.APIError); !ok || body.Error != "Missing GROQ_API_KEY" {
		t.Errorf("unexpected body %+v", resp.Body)
	}
}

func TestNewOptimizerHandlerSendsZeroTemperature(t *testing.T) {
	var sent map[string]interface{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Title: Bar"}}]}`))
	}))
	defer upstream.Close()

	cfg := &config.Config{
		GroqAPIKey:  "test-groq-key",
		GroqBaseURL: upstream.URL,
		Completion:  config.DefaultCompletionConfig(),
		Prompt:      config.DefaultPromptConfig(),
	}
	cfg.Completion.Temperature = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero temperature should be valid: %v", err)
	}
	log := logger.New(logger.Config{Level: slog.LevelError, Output: &bytes.Buffer{}})

	resp := NewOptimizerHandler(cfg, log, nil).Handle(context.Background(), optimizer.Request{
		Method: http.MethodPost,
		Body:   []byte(`{"title":"hoodie","brand":"Nike"}`),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", resp.StatusCode, resp.Body)
	}

	temperature, ok := sent["temperature"].(float64)
	if !ok {
		t.Fatalf("temperature missing from upstream request: %v", sent)
	}
	if temperature > 1e-6 {
		t.Errorf("expected near-zero temperature, got %v", temperature)
	}
}
