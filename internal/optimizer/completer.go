package optimizer

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the chat completion port. *openai.Client satisfies it.
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}
