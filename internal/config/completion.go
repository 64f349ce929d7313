package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// CompletionConfig contains the settings of the chat completion call made for every
// optimization request.
type CompletionConfig struct {
	// Model is the provider model identifier (e.g., "llama-3.1-8b-instant").
	Model string `yaml:"model"`

	// MaxTokens is the completion token ceiling.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature is the sampling temperature, between 0 and 2.
	Temperature float32 `yaml:"temperature"`
}

// DefaultCompletionConfig returns the completion settings used when neither the
// config file nor the environment override them.
func DefaultCompletionConfig() CompletionConfig {
	return CompletionConfig{
		Model:       "llama-3.1-8b-instant",
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

// Validate performs validation of a CompletionConfig value:
// - Checks that the model name is not empty
// - Checks that MaxTokens is positive
// - Checks that Temperature is within the range accepted by OpenAI-compatible APIs
func (cfg *CompletionConfig) Validate() error {
	if strings.TrimSpace(cfg.Model) == "" {
		return errors.New("completion model must be specified")
	}

	if cfg.MaxTokens <= 0 {
		return fmt.Errorf("completion max_tokens must be positive, got %d", cfg.MaxTokens)
	}

	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return fmt.Errorf("completion temperature must be between 0 and 2, got %v", cfg.Temperature)
	}

	return nil
}

// PromptConfig contains the wording of the listing optimization prompt.
type PromptConfig struct {
	// SystemPrompt is sent as the system message.
	SystemPrompt string `yaml:"system_prompt"`

	// Persona is the first line of the user prompt.
	Persona string `yaml:"persona"`

	// TitleMaxChars is the title length the model is asked to stay under.
	TitleMaxChars int `yaml:"title_max_chars"`

	// TagCount is the number of tags the model is asked for.
	TagCount int `yaml:"tag_count"`
}

// DefaultPromptConfig returns the prompt wording for Depop listings.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompt:  "You optimize Depop listings.",
		Persona:       "You are a Depop SEO and streetwear optimization expert.",
		TitleMaxChars: 60,
		TagCount:      10,
	}
}

// Validate performs validation of a PromptConfig value:
// - Checks that the system prompt and persona are not empty
// - Checks that the title length and tag count are positive
func (cfg *PromptConfig) Validate() error {
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		return errors.New("prompt system_prompt must be specified")
	}

	if strings.TrimSpace(cfg.Persona) == "" {
		return errors.New("prompt persona must be specified")
	}

	if cfg.TitleMaxChars <= 0 {
		return fmt.Errorf("prompt title_max_chars must be positive, got %d", cfg.TitleMaxChars)
	}

	if cfg.TagCount <= 0 {
		return fmt.Errorf("prompt tag_count must be positive, got %d", cfg.TagCount)
	}

	return nil
}

// validateURLString performs basic sanity checks of a string that should contain a valid URL.
func validateURLString(str string) error {
	u, err := url.Parse(str)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("URL does not contain a hostname")
	}

	return nil
}
