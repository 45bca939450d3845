package provider

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Groq talks to Groq's OpenAI-compatible chat completions endpoint.
type Groq struct {
	client *openai.Client
	model  string
}

func NewGroq(apiKey, baseURL, model string, httpClient *http.Client) *Groq {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &Groq{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *Groq) Name() string { return "groq" }

// Complete sends prompt as the only user message and returns
// choices[0].message.content.
func (g *Groq) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq chat completion: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
