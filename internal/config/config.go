// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in AI_PROVIDER.
const (
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultHTTPAddr           = ":8080"
	DefaultLogLevel           = "info"
	DefaultGroqBaseURL        = "https://api.groq.com/openai/v1"
	DefaultGroqModel          = "llama-3.3-70b-versatile"
	DefaultAnthropicModel     = "claude-3-7-sonnet-latest"
	DefaultAnthropicMaxTokens = 1024
	DefaultHistorySize        = 10
	DefaultSessionTTL         = 30 * time.Minute
)

// AI selects and configures the chat-completion provider. APIKey is empty
// when no credential is set, which is not a startup error.
type AI struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int64
}

// Config is the full service configuration.
type Config struct {
	HTTPAddr    string
	LogLevel    string
	AI          AI
	HistorySize int
	SessionTTL  time.Duration
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPAddr:    stringOr(getenv("HTTP_ADDR"), DefaultHTTPAddr),
		LogLevel:    strings.ToLower(stringOr(getenv("LOG_LEVEL"), DefaultLogLevel)),
		HistorySize: DefaultHistorySize,
		SessionTTL:  DefaultSessionTTL,
	}

	if v := getenv("HISTORY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > DefaultHistorySize {
			return Config{}, fmt.Errorf("invalid HISTORY_SIZE %q: must be between 1 and %d", v, DefaultHistorySize)
		}
		cfg.HistorySize = n
	}

	if v := getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = d
	}

	ai, err := loadAI(getenv)
	if err != nil {
		return Config{}, err
	}
	cfg.AI = ai

	return cfg, nil
}

func loadAI(getenv func(string) string) (AI, error) {
	provider := strings.ToLower(stringOr(getenv("AI_PROVIDER"), ProviderGroq))

	switch provider {
	case ProviderGroq:
		return AI{
			Provider: provider,
			Model:    stringOr(getenv("AI_MODEL"), DefaultGroqModel),
			APIKey:   strings.TrimSpace(getenv("GROQ_API_KEY")),
			BaseURL:  stringOr(getenv("GROQ_BASE_URL"), DefaultGroqBaseURL),
		}, nil

	case ProviderAnthropic:
		ai := AI{
			Provider:  provider,
			Model:     stringOr(getenv("AI_MODEL"), DefaultAnthropicModel),
			APIKey:    strings.TrimSpace(getenv("ANTHROPIC_API_KEY")),
			BaseURL:   getenv("ANTHROPIC_BASE_URL"),
			MaxTokens: DefaultAnthropicMaxTokens,
		}
		if v := getenv("ANTHROPIC_MAX_TOKENS"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n <= 0 {
				return AI{}, fmt.Errorf("invalid ANTHROPIC_MAX_TOKENS %q: must be a positive integer", v)
			}
			ai.MaxTokens = n
		}
		return ai, nil

	default:
		return AI{}, fmt.Errorf("invalid AI_PROVIDER %q: want %q or %q", provider, ProviderGroq, ProviderAnthropic)
	}
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
