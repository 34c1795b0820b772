package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/probelabs/deepscout/internal/config"
)

// Registry resolves "provider:model" refs to configured clients.
// Clients are built lazily and cached; the registry is safe for
// concurrent use.
type Registry struct {
	cfg     config.ProvidersConfig
	mu      sync.Mutex
	clients map[string]Provider
}

// NewRegistry creates a registry backed by the given credentials.
func NewRegistry(cfg config.ProvidersConfig) *Registry {
	return &Registry{
		cfg:     cfg,
		clients: make(map[string]Provider),
	}
}

// Register installs a pre-built provider under a name, shadowing any
// built-in with that name. Used for the mock provider and in tests.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[p.Name()] = p
}

// Resolve returns the client and bare model name for a "provider:model" ref.
func (r *Registry) Resolve(ref string) (Provider, string, error) {
	parsed, err := ParseModelRef(ref)
	if err != nil {
		return nil, "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[parsed.Provider]; ok {
		return client, parsed.Model, nil
	}

	client, err := r.build(parsed.Provider)
	if err != nil {
		return nil, "", err
	}
	r.clients[parsed.Provider] = client
	return client, parsed.Model, nil
}

func (r *Registry) build(name string) (Provider, error) {
	switch name {
	case "openai":
		return NewOpenAIProvider(r.cfg.OpenAI.APIKey, r.cfg.OpenAI.APIBase)
	case "anthropic":
		return NewAnthropicProvider(r.cfg.Anthropic.APIKey, r.cfg.Anthropic.APIBase)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// Generate resolves ref and runs the request against it. The bare model
// name from the ref replaces req.Model.
func (r *Registry) Generate(ctx context.Context, ref string, req Request) (*Response, error) {
	client, model, err := r.Resolve(ref)
	if err != nil {
		return nil, err
	}
	req.Model = model
	return client.Generate(ctx, req)
}
