package testutil

import (
	"context"
	"sync"
)

// StubProvider is an in-memory chat-completion provider that records the
// prompts it receives.
type StubProvider struct {
	Reply string
	Err   error

	mu      sync.Mutex
	prompts []string
}

func (p *StubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()

	if p.Err != nil {
		return "", p.Err
	}
	return p.Reply, nil
}

func (p *StubProvider) Name() string { return "stub" }

// Prompts returns the prompts received so far.
func (p *StubProvider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.prompts))
	copy(out, p.prompts)
	return out
}
