package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/probelabs/deepscout/internal/config"
)

const cacheMaxEntries = 100

// Client fronts a failover chain of search providers with a TTL cache and
// a rate limiter. The first provider that returns results wins; chain order
// is the configured backend first, DuckDuckGo (keyless) as last resort.
type Client struct {
	providers  []Provider
	cache      *expirable.LRU[string, []Result]
	limiter    *rate.Limiter
	maxResults int
}

// NewClient builds a client for the preset's search backend.
func NewClient(cfg config.SearchConfig, api config.SearchAPI) (*Client, error) {
	var chain []Provider

	switch api {
	case config.SearchTavily:
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("search backend %s requires TAVILY_API_KEY", api)
		}
		chain = append(chain, NewTavily(cfg.Tavily.APIKey, cfg.Tavily.Depth))
	case config.SearchBrave:
		if cfg.Brave.APIKey == "" {
			return nil, fmt.Errorf("search backend %s requires BRAVE_API_KEY", api)
		}
		chain = append(chain, NewBrave(cfg.Brave.APIKey))
	case config.SearchDuckDuckGo:
		// keyless, added below
	default:
		return nil, fmt.Errorf("unknown search backend: %s", api)
	}
	chain = append(chain, NewDuckDuckGo())

	ttl := time.Duration(cfg.CacheTTLMin) * time.Minute
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	return &Client{
		providers:  chain,
		cache:      expirable.NewLRU[string, []Result](cacheMaxEntries, nil, ttl),
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		maxResults: cfg.MaxResults,
	}, nil
}

// newClientWithChain is a test seam.
func newClientWithChain(chain []Provider, maxResults int, ttl time.Duration) *Client {
	return &Client{
		providers:  chain,
		cache:      expirable.NewLRU[string, []Result](cacheMaxEntries, nil, ttl),
		limiter:    rate.NewLimiter(rate.Inf, 1),
		maxResults: maxResults,
	}
}

// Search runs the query through the failover chain. Cached results are
// served without hitting any backend or the rate limiter.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	key := normalizeCacheKey(query)
	if cached, ok := c.cache.Get(key); ok {
		slog.Debug("search cache hit", "query", query)
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for _, p := range c.providers {
		results, err := p.Search(ctx, query, c.maxResults)
		if err != nil {
			slog.Warn("search provider failed", "provider", p.Name(), "error", err)
			lastErr = err
			continue
		}

		c.cache.Add(key, results)
		slog.Debug("search completed", "provider", p.Name(), "query", query, "results", len(results))
		return results, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all search providers failed: %w", lastErr)
	}
	return nil, fmt.Errorf("no search providers configured")
}

func normalizeCacheKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// FormatResults renders results as a numbered list for prompt building.
func FormatResults(query string, results []Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for: %s", query)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Search results for: %s\n\n", query))
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, r.Title, r.URL))
		if r.Snippet != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", r.Snippet))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
