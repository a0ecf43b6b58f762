// Package misskey posts notes to a Misskey instance's note-creation API.
package misskey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hubnote-dev/hubnote/internal/format"
)

// DefaultTimeout bounds the publish POST. The instance has no SLA and the
// webhook response has already been sent by the time this runs.
const DefaultTimeout = 10 * time.Second

// Client publishes notes to one Misskey instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a publisher for the instance at baseURL. Zero timeout means
// DefaultTimeout; proxy is an optional outbound proxy URL.
func New(baseURL, token string, timeout time.Duration, proxy string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("instance url is empty")
	}
	if token == "" {
		return nil, fmt.Errorf("api token is empty")
	}
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

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// noteRequest is the notes/create body. Mention and hashtag extraction are
// disabled so quoted issue/comment text containing @name or #tag is not
// reinterpreted by the instance.
type noteRequest struct {
	Token             string `json:"i"`
	Text              string `json:"text"`
	Visibility        string `json:"visibility"`
	NoExtractMentions bool   `json:"noExtractMentions"`
	NoExtractHashtags bool   `json:"noExtractHashtags"`
}

// Publish posts one note. The response body is discarded; callers log and
// swallow errors, there is no retry.
func (c *Client) Publish(ctx context.Context, n format.Note) error {
	visibility := n.Visibility
	if visibility == "" {
		visibility = format.VisibilityHome
	}

	payload, err := json.Marshal(noteRequest{
		Token:             c.token,
		Text:              n.Text,
		Visibility:        string(visibility),
		NoExtractMentions: true,
		NoExtractHashtags: true,
	})
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/notes/create", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build note request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post note: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post note: unexpected status %d", resp.StatusCode)
	}
	return nil
}
