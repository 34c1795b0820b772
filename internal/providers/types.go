// Package providers wraps LLM backends behind a single Generate interface.
// Models are addressed by "provider:model" refs (e.g. "openai:gpt-4o",
// "anthropic:claude-3-5-sonnet-20241022"); the Registry resolves a ref to
// a configured client.
package providers

import (
	"context"
	"fmt"
	"strings"
)

// Request is a single completion call: one system prompt, one user prompt.
// The research pipeline is stage-oriented, so a full message history is not
// needed at this layer.
type Request struct {
	Model       string // bare model name, without the provider prefix
	System      string
	Prompt      string
	MaxTokens   int     // 0 = provider default
	Temperature float32 // 0 = provider default
}

// Usage reports token consumption for a call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response carries the generated text and token usage.
type Response struct {
	Text  string
	Usage Usage
}

// Provider is implemented by each LLM backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

// ModelRef is a parsed "provider:model" reference.
type ModelRef struct {
	Provider string
	Model    string
}

// ParseModelRef splits "provider:model". Both parts must be non-empty.
func ParseModelRef(ref string) (ModelRef, error) {
	provider, model, ok := strings.Cut(ref, ":")
	if !ok || provider == "" || model == "" {
		return ModelRef{}, fmt.Errorf("invalid model ref %q: want provider:model", ref)
	}
	return ModelRef{Provider: provider, Model: model}, nil
}

func (r ModelRef) String() string {
	return r.Provider + ":" + r.Model
}
