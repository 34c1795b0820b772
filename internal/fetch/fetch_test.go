package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// testFetcher disables DNS-based target checks so httptest loopback
// servers are reachable.
func testFetcher(maxChars int) *Fetcher {
	f := New(maxChars, time.Minute)
	f.checkAddr = func(string) error { return nil }
	return f
}

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Test &amp; Page</title></head>
<body><nav>skip this</nav><h1>Heading</h1><p>First paragraph.</p>
<ul><li>alpha</li><li>beta</li></ul><script>ignore()</script></body></html>`))
	}))
	defer srv.Close()

	page, err := testFetcher(0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if page.Title != "Test & Page" {
		t.Errorf("Title = %q", page.Title)
	}
	for _, want := range []string{"Heading", "First paragraph.", "- alpha", "- beta"} {
		if !strings.Contains(page.Text, want) {
			t.Errorf("text missing %q:\n%s", want, page.Text)
		}
	}
	for _, skip := range []string{"skip this", "ignore()"} {
		if strings.Contains(page.Text, skip) {
			t.Errorf("text should not contain %q", skip)
		}
	}
}

func TestFetchJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key":"value"}`))
	}))
	defer srv.Close()

	page, err := testFetcher(0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(page.Text, "\"key\": \"value\"") {
		t.Errorf("JSON not pretty-printed: %q", page.Text)
	}
}

func TestFetchTruncation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer srv.Close()

	page, err := testFetcher(1000).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(page.Text) != 1000 || !page.Truncated {
		t.Errorf("len = %d, truncated = %v; want 1000, true", len(page.Text), page.Truncated)
	}
}

func TestFetchCaching(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("body"))
	}))
	defer srv.Close()

	f := testFetcher(0)
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestFetchRejectsNonHTTP(t *testing.T) {
	if _, err := testFetcher(0).Fetch(context.Background(), "ftp://example.com/file"); err == nil {
		t.Fatal("expected scheme rejection")
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := testFetcher(0).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestCheckTargetBlocksPrivate(t *testing.T) {
	cases := []string{
		"http://localhost/admin",
		"http://127.0.0.1:8080/",
		"http://10.0.0.5/",
		"http://192.168.1.1/",
		"http://169.254.169.254/latest/meta-data/",
		"http://metadata.google.internal/",
		"http://foo.internal/",
		"http://[::1]/",
	}
	for _, u := range cases {
		if err := checkTarget(u); err == nil {
			t.Errorf("checkTarget(%q) = nil, want error", u)
		}
	}
}

func TestIsPrivateIP(t *testing.T) {
	private := []string{"10.1.2.3", "172.16.0.1", "192.168.0.1", "127.0.0.1", "169.254.1.1", "100.64.0.1", "::1", "fe80::1", "fc00::1"}
	for _, ip := range private {
		if !isPrivateIP(ip) {
			t.Errorf("isPrivateIP(%q) = false, want true", ip)
		}
	}
	public := []string{"8.8.8.8", "1.1.1.1", "2607:f8b0::1"}
	for _, ip := range public {
		if isPrivateIP(ip) {
			t.Errorf("isPrivateIP(%q) = true, want false", ip)
		}
	}
}
