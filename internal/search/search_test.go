package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFormatResults_Empty(t *testing.T) {
	got := FormatResults(nil)
	if got != "No results found." {
		t.Errorf("FormatResults(nil) = %q", got)
	}
}

func TestFormatResults_Numbered(t *testing.T) {
	results := []Result{
		{Title: "First", URL: "https://a.example", Snippet: "alpha"},
		{Title: "Second", URL: "https://b.example", Snippet: "beta"},
	}
	got := FormatResults(results)
	for _, want := range []string{"1. First", "2. Second", "https://a.example", "beta"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatResults missing %q in:\n%s", want, got)
		}
	}
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"results":[
			{"title":"Go","url":"https://go.dev","content":"The Go language"},
			{"title":"Docs","url":"https://go.dev/doc","content":"Documentation"}
		]}`))
	}))
	defer srv.Close()

	tv := NewTavily("key", "")
	tv.endpoint = srv.URL

	results, err := tv.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Go" || results[0].URL != "https://go.dev" || results[0].Snippet != "The Go language" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestTavilySearch_MissingKey(t *testing.T) {
	tv := NewTavily("", "basic")
	if _, err := tv.Search(context.Background(), "anything"); err == nil {
		t.Error("Search succeeded without an API key")
	}
}

func TestTavilySearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tv := NewTavily("key", "")
	tv.endpoint = srv.URL
	if _, err := tv.Search(context.Background(), "q"); err == nil {
		t.Error("Search succeeded on HTTP 500")
	}
}

func TestTavilySearch_RetryOn429(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"results":[{"title":"T","url":"u","content":"c"}]}`))
	}))
	defer srv.Close()

	tv := NewTavily("key", "")
	tv.endpoint = srv.URL

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := tv.Search(ctx, "q")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2", calls)
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
		if got := r.URL.Query().Get("q"); got != "go testing" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(`{"web":{"results":[{"title":"B","url":"https://b","description":"d"}]}}`))
	}))
	defer srv.Close()

	b := NewBrave("brave-key")
	b.endpoint = srv.URL

	results, err := b.Search(context.Background(), "go testing")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Snippet != "d" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestBraveSearch_MissingKey(t *testing.T) {
	b := NewBrave("  ")
	if _, err := b.Search(context.Background(), "q"); err == nil {
		t.Error("Search succeeded without an API key")
	}
}

func TestBraveResetDelay(t *testing.T) {
	h := http.Header{}
	if got := braveResetDelay(h); got != time.Second {
		t.Errorf("missing header: got %v, want 1s", got)
	}

	h.Set("X-RateLimit-Reset", "2, 1419704")
	if got := braveResetDelay(h); got != 2*time.Second {
		t.Errorf("got %v, want 2s", got)
	}

	h.Set("X-RateLimit-Reset", "garbage")
	if got := braveResetDelay(h); got != time.Second {
		t.Errorf("unparseable header: got %v, want 1s", got)
	}
}

func TestParseLiteHTML(t *testing.T) {
	page := `<table>
	<tr><td><a rel="nofollow" class='result-link' href='https://example.com/a'>Alpha &amp; Co</a></td></tr>
	<tr><td class='result-snippet'>First snippet with <b>bold</b> text.</td></tr>
	<tr><td><a rel="nofollow" class='result-link' href='https://example.com/b'>Beta</a></td></tr>
	<tr><td class='result-snippet'>Second snippet.</td></tr>
	</table>`

	results := parseLiteHTML(page)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Alpha & Co" {
		t.Errorf("title = %q, entities not unescaped", results[0].Title)
	}
	if results[0].URL != "https://example.com/a" {
		t.Errorf("url = %q", results[0].URL)
	}
	if !strings.Contains(results[0].Snippet, "bold") || strings.Contains(results[0].Snippet, "<b>") {
		t.Errorf("snippet = %q, tags not stripped", results[0].Snippet)
	}
}

func TestParseLiteHTML_NoResults(t *testing.T) {
	if got := parseLiteHTML("<html><body>nothing here</body></html>"); len(got) != 0 {
		t.Errorf("got %d results from empty page", len(got))
	}
}
