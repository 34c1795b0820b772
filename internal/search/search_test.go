package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeProvider struct {
	name    string
	results []Result
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, query string, count int) ([]Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestClientFailover(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("boom")}
	fallback := &fakeProvider{name: "fallback", results: []Result{{Title: "hit", URL: "https://example.com"}}}

	c := newClientWithChain([]Provider{primary, fallback}, 5, time.Minute)

	results, err := c.Search(context.Background(), "golang testing")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Title != "hit" {
		t.Errorf("unexpected results: %+v", results)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, fallback.calls)
	}
}

func TestClientAllProvidersFail(t *testing.T) {
	c := newClientWithChain([]Provider{
		&fakeProvider{name: "a", err: errors.New("down")},
		&fakeProvider{name: "b", err: errors.New("also down")},
	}, 5, time.Minute)

	if _, err := c.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when every provider fails")
	}
}

func TestClientCaching(t *testing.T) {
	p := &fakeProvider{name: "p", results: []Result{{Title: "cached"}}}
	c := newClientWithChain([]Provider{p}, 5, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), "  Repeated Query "); err != nil {
			t.Fatalf("Search() error = %v", err)
		}
	}
	// Differently-cased and padded queries share a cache entry.
	if _, err := c.Search(context.Background(), "repeated query"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (rest served from cache)", p.calls)
	}
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["query"] != "go generics" {
			t.Errorf("query = %v", req["query"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "Go generics", "url": "https://go.dev/blog/intro-generics", "content": "An introduction."},
				{"title": "Spec", "url": "https://go.dev/ref/spec", "content": "Type parameters."},
			},
		})
	}))
	defer srv.Close()

	tv := NewTavily("key", "")
	tv.endpoint = srv.URL

	results, err := tv.Search(context.Background(), "go generics", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (count cap)", len(results))
	}
	if results[0].URL != "https://go.dev/blog/intro-generics" {
		t.Errorf("URL = %q", results[0].URL)
	}
}

func TestTavilyRetriesOn429(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{{"title": "ok", "url": "https://ok", "content": ""}},
		})
	}))
	defer srv.Close()

	tv := NewTavily("key", "advanced")
	tv.endpoint = srv.URL

	results, err := tv.Search(context.Background(), "rate limited", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestBraveSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Subscription-Token"); got != "brave-key" {
			t.Errorf("token header = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"web": map[string]any{
				"results": []map[string]string{
					{"title": "Result", "url": "https://example.com", "description": "A page."},
				},
			},
		})
	}))
	defer srv.Close()

	b := NewBrave("brave-key")
	b.endpoint = srv.URL

	results, err := b.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Snippet != "A page." {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestExtractDDGResults(t *testing.T) {
	html := `
<div class="result">
  <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc">Go <b>Documentation</b></a>
  <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F">Official <b>Go</b> docs.</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://pkg.go.dev/">pkg.go.dev</a>
  <a class="result__snippet" href="https://pkg.go.dev/">Package index.</a>
</div>`

	results := extractDDGResults(html, 5)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Go Documentation" {
		t.Errorf("title = %q", results[0].Title)
	}
	if results[0].URL != "https://go.dev/doc/" {
		t.Errorf("redirect not unwrapped: %q", results[0].URL)
	}
	if results[0].Snippet != "Official Go docs." {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
	if results[1].URL != "https://pkg.go.dev/" {
		t.Errorf("plain URL mangled: %q", results[1].URL)
	}
}

func TestExtractDDGResultsEmpty(t *testing.T) {
	if got := extractDDGResults("<html><body>no results here</body></html>", 5); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestFormatResults(t *testing.T) {
	out := FormatResults("topic", []Result{{Title: "T", URL: "https://u", Snippet: "S"}})
	for _, want := range []string{"topic", "1. T", "https://u", "S"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}

	empty := FormatResults("nothing", nil)
	if !strings.Contains(empty, "No results found") {
		t.Errorf("empty output = %q", empty)
	}
}
