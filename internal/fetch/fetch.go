// Package fetch retrieves web pages referenced by search results and
// reduces them to plain text suitable for model prompts.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultMaxChars = 50000
	maxRedirects    = 3
	fetchTimeout    = 30 * time.Second
	cacheEntries    = 100
	fetchUserAgent  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_7_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Page is the extracted content of a fetched URL.
type Page struct {
	URL       string
	Title     string
	Text      string
	Truncated bool
}

// Fetcher downloads pages with SSRF protection, redirect limits and a
// TTL cache. Content is capped at maxChars after extraction.
type Fetcher struct {
	client    *http.Client
	cache     *expirable.LRU[string, *Page]
	maxChars  int
	checkAddr func(string) error
}

// New builds a Fetcher. cacheTTL <= 0 disables expiry-based reuse in
// favor of a short default.
func New(maxChars int, cacheTTL time.Duration) *Fetcher {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}

	f := &Fetcher{
		cache:     expirable.NewLRU[string, *Page](cacheEntries, nil, cacheTTL),
		maxChars:  maxChars,
		checkAddr: checkTarget,
	}
	f.client = &http.Client{
		Timeout: fetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if err := f.checkAddr(req.URL.String()); err != nil {
				return fmt.Errorf("redirect blocked: %w", err)
			}
			return nil
		},
	}
	return f
}

// Fetch downloads a URL and extracts its text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("only http and https URLs are supported")
	}

	if cached, ok := f.cache.Get(rawURL); ok {
		slog.Debug("fetch cache hit", "url", rawURL)
		return cached, nil
	}

	if err := f.checkAddr(rawURL); err != nil {
		return nil, fmt.Errorf("target rejected: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d fetching %s", resp.StatusCode, rawURL)
	}

	// Read extra beyond maxChars since HTML markup inflates raw size.
	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.maxChars*4)))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	page := f.extract(resp, body)
	f.cache.Add(rawURL, page)
	slog.Debug("fetched page", "url", rawURL, "chars", len(page.Text), "truncated", page.Truncated)
	return page, nil
}

func (f *Fetcher) extract(resp *http.Response, body []byte) *Page {
	contentType := resp.Header.Get("Content-Type")
	finalURL := resp.Request.URL.String()

	var text, title string
	switch {
	case strings.Contains(contentType, "application/json"):
		text = prettyJSON(body)
	case strings.Contains(contentType, "text/html"),
		strings.Contains(contentType, "application/xhtml"):
		text = htmlToText(string(body))
		title = extractTitle(string(body))
	default:
		text = string(body)
	}

	truncated := false
	if len(text) > f.maxChars {
		text = text[:f.maxChars]
		truncated = true
	}

	return &Page{URL: finalURL, Title: title, Text: text, Truncated: truncated}
}

func prettyJSON(body []byte) string {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}
	formatted, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return string(body)
	}
	return string(formatted)
}
