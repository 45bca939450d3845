package provider

import (
	"errors"
	"testing"

	"smart-calculator/internal/config"
)

func TestNewWithoutCredential(t *testing.T) {
	for _, name := range []string{config.ProviderGroq, config.ProviderAnthropic} {
		p, err := New(config.AI{Provider: name})
		if !errors.Is(err, ErrNoCredential) {
			t.Fatalf("%s: expected no credential error, got %v", name, err)
		}
		if p != nil {
			t.Fatalf("%s: expected nil provider, got %T", name, p)
		}
	}
}

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		cfg  config.AI
		name string
	}{
		{config.AI{Provider: config.ProviderGroq, APIKey: "gsk", BaseURL: config.DefaultGroqBaseURL, Model: config.DefaultGroqModel}, "groq"},
		{config.AI{Provider: config.ProviderAnthropic, APIKey: "sk-ant", Model: config.DefaultAnthropicModel, MaxTokens: 64}, "anthropic"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tc.name {
				t.Fatalf("expected provider %q, got %q", tc.name, p.Name())
			}
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(config.AI{Provider: "openai", APIKey: "x"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
