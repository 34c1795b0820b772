package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockProvider serves the "mock" ref prefix. It returns deterministic text
// derived from the prompt, so the full pipeline can run without API keys
// (offline demo mode) and tests stay reproducible.
type MockProvider struct {
	mu    sync.Mutex
	calls int
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string { return "mock" }

// Calls returns how many generations were served.
func (p *MockProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	p.mu.Lock()
	p.calls++
	n := p.calls
	p.mu.Unlock()

	// First prompt line stands in for the "topic" of this stage.
	subject := strings.TrimSpace(req.Prompt)
	if i := strings.IndexByte(subject, '\n'); i >= 0 {
		subject = subject[:i]
	}
	if len(subject) > 120 {
		subject = subject[:120]
	}

	text := fmt.Sprintf("[mock %s #%d] %s", req.Model, n, subject)
	return &Response{
		Text: text,
		Usage: Usage{
			InputTokens:  len(req.Prompt) / 4,
			OutputTokens: len(text) / 4,
		},
	}, nil
}
