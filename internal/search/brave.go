package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// braveGate serialises requests per API key so that only one request per
// second is issued for that key, matching Brave's 1 req/s limit.
type braveGate struct {
	mu      sync.Mutex
	readyAt time.Time
}

var (
	braveGatesMu sync.Mutex
	braveGates   = map[string]*braveGate{}
)

func gateFor(apiKey string) *braveGate {
	braveGatesMu.Lock()
	defer braveGatesMu.Unlock()
	g, ok := braveGates[apiKey]
	if !ok {
		g = &braveGate{}
		braveGates[apiKey] = g
	}
	return g
}

// wait blocks until the key's next request slot, then reserves the slot for
// the caller. Returns ctx.Err() if the context expires while waiting.
func (g *braveGate) wait(ctx context.Context) error {
	for {
		g.mu.Lock()
		now := time.Now()
		if !now.Before(g.readyAt) {
			g.readyAt = now.Add(time.Second)
			g.mu.Unlock()
			return nil
		}
		sleep := g.readyAt.Sub(now)
		g.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// Brave uses the Brave Search API.
type Brave struct {
	apiKey   string
	client   *http.Client
	endpoint string
}

// NewBrave constructs a Brave search provider.
func NewBrave(apiKey string) *Brave {
	return &Brave{
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: braveEndpoint,
	}
}

// Search executes a Brave query. Concurrent callers sharing an API key are
// paced through a shared per-key gate; 429 responses are retried after the
// reset delay advertised by the API.
func (b *Brave) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(b.apiKey) == "" {
		return nil, fmt.Errorf("brave: API key is missing")
	}
	endpoint := b.endpoint + "?q=" + url.QueryEscape(query)
	gate := gateFor(b.apiKey)

	var resp *http.Response
	for {
		if err := gate.wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Subscription-Token", b.apiKey)

		resp, err = b.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}

		wait := braveResetDelay(resp.Header)
		resp.Body.Close()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave http %d", resp.StatusCode)
	}

	var body struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("brave: decode response: %w", err)
	}

	results := make([]Result, 0, len(body.Web.Results))
	for _, r := range body.Web.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return results, nil
}

// braveResetDelay reads X-RateLimit-Reset, a comma-separated list of reset
// times in seconds (e.g. "1, 1419704"), and returns the smallest as a
// duration. Falls back to 1 second when missing or unparseable.
func braveResetDelay(h http.Header) time.Duration {
	raw := h.Get("X-RateLimit-Reset")
	if raw == "" {
		return time.Second
	}
	lowest := -1
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		if lowest < 0 || n < lowest {
			lowest = n
		}
	}
	if lowest < 0 {
		return time.Second
	}
	return time.Duration(lowest) * time.Second
}
