package optimizer

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/eternisai/listing-optimizer/internal/config"
	"github.com/eternisai/listing-optimizer/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

// fakeCompleter returns a fixed completion or error and records requests.
type fakeCompleter struct {
	mu       sync.Mutex
	content  string
	choices  int
	err      error
	requests []openai.ChatCompletionRequest
}

func newFakeCompleter(content string) *fakeCompleter {
	return &fakeCompleter{content: content, choices: 1}
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, request)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}

	resp := openai.ChatCompletionResponse{ID: "chatcmpl-test", Model: request.Model}
	for i := 0; i < f.choices; i++ {
		resp.Choices = append(resp.Choices, openai.ChatCompletionChoice{
			Index:   i,
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content},
		})
	}
	return resp, nil
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// recordingMetrics counts observations.
type recordingMetrics struct {
	mu       sync.Mutex
	requests map[int]int
	errors   map[string]int
	upstream int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{requests: map[int]int{}, errors: map[string]int{}}
}

func (m *recordingMetrics) ObserveRequest(method string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[status]++
}

func (m *recordingMetrics) ObserveUpstream(model string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstream++
}

func (m *recordingMetrics) ObserveError(class string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[class]++
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	if testing.Verbose() {
		return logger.New(logger.Config{Level: slog.LevelDebug})
	}
	return logger.New(logger.Config{Level: slog.LevelError, Output: &bytes.Buffer{}})
}

func newTestService(t *testing.T, completer Completer, metrics Recorder) *Service {
	t.Helper()
	return NewService(completer, config.DefaultCompletionConfig(), config.DefaultPromptConfig(), testLogger(t), metrics)
}
