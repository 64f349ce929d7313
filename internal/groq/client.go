// Package groq builds the chat completion client for Groq's OpenAI-compatible API.
package groq

import (
	"github.com/eternisai/listing-optimizer/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// NewClient creates a client for the configured Groq endpoint. The client is
// safe for concurrent use and should be built once per process.
func NewClient(cfg *config.Config) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.GroqAPIKey)
	clientConfig.BaseURL = cfg.GroqBaseURL
	return openai.NewClientWithConfig(clientConfig)
}
