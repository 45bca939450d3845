package config

import (
	"strings"
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPAddr != DefaultHTTPAddr {
		t.Fatalf("expected addr %q, got %q", DefaultHTTPAddr, cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected log level info, got %q", cfg.LogLevel)
	}
	if cfg.HistorySize != 10 {
		t.Fatalf("expected history size 10, got %d", cfg.HistorySize)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected session TTL 30m, got %v", cfg.SessionTTL)
	}
	if cfg.AI.Provider != ProviderGroq || cfg.AI.Model != DefaultGroqModel || cfg.AI.BaseURL != DefaultGroqBaseURL {
		t.Fatalf("unexpected AI defaults %+v", cfg.AI)
	}
	if cfg.AI.APIKey != "" {
		t.Fatal("expected no API key by default")
	}
}

func TestLoadGroqCredential(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"GROQ_API_KEY": " gsk_test \n",
		"AI_MODEL":     "llama-3.1-8b-instant",
		"HTTP_ADDR":    "127.0.0.1:9000",
		"LOG_LEVEL":    "DEBUG",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AI.APIKey != "gsk_test" {
		t.Fatalf("expected trimmed key, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "llama-3.1-8b-instant" {
		t.Fatalf("expected model override, got %q", cfg.AI.Model)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("expected addr override, got %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected lowered log level, got %q", cfg.LogLevel)
	}
}

func TestLoadAnthropic(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"AI_PROVIDER":          "Anthropic",
		"ANTHROPIC_API_KEY":    "sk-ant",
		"ANTHROPIC_MAX_TOKENS": "512",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AI.Provider != ProviderAnthropic || cfg.AI.APIKey != "sk-ant" || cfg.AI.MaxTokens != 512 {
		t.Fatalf("unexpected AI config %+v", cfg.AI)
	}
	if cfg.AI.Model != DefaultAnthropicModel {
		t.Fatalf("expected default anthropic model, got %q", cfg.AI.Model)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"history size", map[string]string{"HISTORY_SIZE": "zero"}, "HISTORY_SIZE"},
		{"negative history", map[string]string{"HISTORY_SIZE": "-1"}, "HISTORY_SIZE"},
		{"history above cap", map[string]string{"HISTORY_SIZE": "25"}, "HISTORY_SIZE"},
		{"session ttl", map[string]string{"SESSION_TTL": "soon"}, "SESSION_TTL"},
		{"provider", map[string]string{"AI_PROVIDER": "openai"}, "AI_PROVIDER"},
		{"max tokens", map[string]string{"AI_PROVIDER": "anthropic", "ANTHROPIC_MAX_TOKENS": "0"}, "ANTHROPIC_MAX_TOKENS"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(env(tc.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}
