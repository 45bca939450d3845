// Package provider implements chat-completion clients for the explainer.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"smart-calculator/internal/config"
)

// ErrNoCredential reports that the selected provider has no API key. The
// service keeps running; AI requests are answered with ProviderUnavailable.
var ErrNoCredential = errors.New("no API credential configured")

// ErrEmptyResponse reports a completion without any choices or content blocks.
var ErrEmptyResponse = errors.New("provider returned no completion")

// Completer sends a single user-role prompt and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// New builds the provider selected by cfg.
func New(cfg config.AI) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrNoCredential)
	}

	client := NewHTTPClient()

	switch cfg.Provider {
	case config.ProviderGroq:
		return NewGroq(cfg.APIKey, cfg.BaseURL, cfg.Model, client), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, client), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// NewHTTPClient returns the client used for outbound provider calls. Requests
// are traced; no timeout is set, so a call is bounded by its context.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
