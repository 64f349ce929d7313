package optimizer

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/eternisai/listing-optimizer/internal/config"
	"github.com/eternisai/listing-optimizer/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

// Service turns a listing into optimized title and tags with a single chat
// completion call. It holds no mutable state and is safe for concurrent use.
type Service struct {
	completer  Completer
	completion config.CompletionConfig
	prompt     config.PromptConfig
	logger     *logger.Logger
	metrics    Recorder
}

// NewService creates a new listing optimization service.
// A nil completer yields a service that reports ErrMissingCredential on every call.
// A nil recorder disables metrics.
func NewService(completer Completer, completion config.CompletionConfig, prompt config.PromptConfig, logger *logger.Logger, metrics Recorder) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}

	return &Service{
		completer:  completer,
		completion: completion,
		prompt:     prompt,
		logger:     logger,
		metrics:    metrics,
	}
}

// Configured reports whether a completion provider is available.
func (s *Service) Configured() bool {
	return s.completer != nil
}

// Validate checks that the listing has the fields the prompt depends on.
// Whitespace counts as a value and is passed to the model as given.
func Validate(listing Listing) error {
	if listing.Title == "" || listing.Brand == "" {
		return ErrValidation
	}
	return nil
}

// Optimize returns the model's text for the listing, unmodified.
func (s *Service) Optimize(ctx context.Context, listing Listing) (string, error) {
	if !s.Configured() {
		return "", ErrMissingCredential
	}

	if err := Validate(listing); err != nil {
		return "", err
	}

	log := s.logger.WithContext(ctx).WithComponent("optimizer")

	request := openai.ChatCompletionRequest{
		Model: s.completion.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.prompt.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(listing, s.prompt)},
		},
		MaxTokens:   s.completion.MaxTokens,
		Temperature: requestTemperature(s.completion.Temperature),
	}

	log.Debug("requesting completion",
		slog.String("model", request.Model),
		slog.String("brand", listing.Brand),
		slog.Int("max_tokens", request.MaxTokens))

	start := time.Now()
	resp, err := s.completer.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	s.metrics.ObserveUpstream(s.completion.Model, duration)

	if err != nil {
		return "", &UpstreamError{Model: s.completion.Model, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	log.Debug("completion received",
		slog.Duration("duration", duration),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content, nil
}

// requestTemperature keeps a configured 0 on the wire. go-openai omits a zero
// temperature, which would leave the provider default in effect.
func requestTemperature(temperature float32) float32 {
	if temperature == 0 {
		return math.SmallestNonzeroFloat32
	}
	return temperature
}
