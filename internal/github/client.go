package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// statusUserAgent is sent on follow-up lookups so the origin of the traffic
// is identifiable on the GitHub side.
const statusUserAgent = "misskey"

// DefaultTimeout bounds the status lookup; the upstream has no SLA and a
// hung GET must not pile up goroutines.
const DefaultTimeout = 10 * time.Second

// StatusClient fetches commit statuses from the GitHub API. It implements
// the status formatter's lookup seam.
type StatusClient struct {
	http *http.Client
}

// NewStatusClient builds a client with a bounded timeout and an optional
// outbound proxy URL. Zero timeout means DefaultTimeout.
func NewStatusClient(timeout time.Duration, proxy string) (*StatusClient, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &StatusClient{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// LatestState returns the state of the most recent status on the commit at
// commitURL (the commit's API URL). An empty string with nil error means the
// commit has no statuses yet.
func (c *StatusClient) LatestState(ctx context.Context, commitURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, commitURL+"/statuses", nil)
	if err != nil {
		return "", fmt.Errorf("build statuses request: %w", err)
	}
	req.Header.Set("User-Agent", statusUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch statuses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("fetch statuses: unexpected status %d", resp.StatusCode)
	}

	var statuses []CommitStatus
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		return "", fmt.Errorf("parse statuses response: %w", err)
	}

	if len(statuses) == 0 {
		return "", nil
	}
	return statuses[0].State, nil
}
