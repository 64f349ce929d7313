package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultConfigFile  = "config.yaml"
)

// ErrMissingAPIKey is returned by Load when GROQ_API_KEY is not set.
// The message doubles as the client-facing error text.
var ErrMissingAPIKey = errors.New("Missing GROQ_API_KEY")

type Config struct {
	Port    string
	GinMode string

	// Groq (OpenAI-compatible chat completions)
	GroqAPIKey  string
	GroqBaseURL string

	Completion CompletionConfig
	Prompt     PromptConfig

	// Server
	ServerShutdownTimeoutSeconds int

	// CORS
	CORSAllowedOrigins string

	// Logging
	LogLevel  string
	LogFormat string
}

// fileConfig is the subset of Config that can be set from the YAML file.
type fileConfig struct {
	Completion CompletionConfig `yaml:"completion"`
	Prompt     PromptConfig     `yaml:"prompt"`
}

// Load builds the configuration with Read and requires GROQ_API_KEY.
// A missing key is a startup error.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read builds the configuration from the environment and the optional YAML file
// named by CONFIG_FILE. Precedence is defaults, then file, then environment.
// GROQ_API_KEY may be empty; serverless entry points use this to keep serving
// health checks while every optimization answers with ErrMissingAPIKey.
func Read() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		// Groq
		GroqAPIKey:  strings.TrimSpace(getEnvOrDefault("GROQ_API_KEY", "")),
		GroqBaseURL: getEnvOrDefault("GROQ_BASE_URL", DefaultGroqBaseURL),

		Completion: DefaultCompletionConfig(),
		Prompt:     DefaultPromptConfig(),

		// Server
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),

		// CORS
		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "debug"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}

	// An explicitly named config file must exist, the default one is optional.
	configFilePath := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	configFile, err := os.Open(configFilePath)
	switch {
	case err == nil:
		defer configFile.Close()
		log.Printf("Loading config file: %v", configFilePath)
		if err := LoadConfigFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFilePath, err)
		}
	case errors.Is(err, os.ErrNotExist) && os.Getenv("CONFIG_FILE") == "":
		log.Printf("No config file at %v, using defaults", configFilePath)
	default:
		return nil, fmt.Errorf("open config file: %w", err)
	}

	cfg.Completion.Model = getEnvOrDefault("GROQ_MODEL", cfg.Completion.Model)
	cfg.Completion.MaxTokens = getEnvAsInt("GROQ_MAX_TOKENS", cfg.Completion.MaxTokens)
	cfg.Completion.Temperature = getEnvAsFloat32("GROQ_TEMPERATURE", cfg.Completion.Temperature)

	if err := cfg.validateSettings(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the assembled configuration, including the API key.
func (cfg *Config) Validate() error {
	if cfg.GroqAPIKey == "" {
		return ErrMissingAPIKey
	}

	return cfg.validateSettings()
}

func (cfg *Config) validateSettings() error {
	if err := validateURLString(cfg.GroqBaseURL); err != nil {
		return fmt.Errorf("bad GROQ_BASE_URL: %w", err)
	}

	if err := cfg.Completion.Validate(); err != nil {
		return err
	}

	return cfg.Prompt.Validate()
}

// CORSOrigins splits CORSAllowedOrigins into a list, dropping empty entries.
func (cfg *Config) CORSOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// LoadConfigFile overlays the completion and prompt sections of a YAML document on cfg.
// Keys that are absent keep their current values; unknown keys are rejected.
func LoadConfigFile(reader io.Reader, cfg *Config) error {
	file := fileConfig{
		Completion: cfg.Completion,
		Prompt:     cfg.Prompt,
	}

	decoder := yaml.NewDecoder(reader, yaml.DisallowUnknownField())
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	cfg.Completion = file.Completion
	cfg.Prompt = file.Prompt

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(parsed)
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as float, using default %f: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}
