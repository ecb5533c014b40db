// Package client consumes the posts endpoint on behalf of the list view.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/0wl93/ocean-road-archive/internal/posts"
)

// Client fetches the normalized item set over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

func New(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint scheme must be http or https, got %q", u.Scheme)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{endpoint: endpoint, http: &http.Client{Timeout: timeout}}, nil
}

// Load requests the posts endpoint. A degraded body is returned as-is with a
// nil error; only transport and decoding failures are errors.
func (c *Client) Load(ctx context.Context) (posts.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return posts.Response{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return posts.Response{}, fmt.Errorf("requesting posts: %w", err)
	}
	defer resp.Body.Close()

	var out posts.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return posts.Response{}, fmt.Errorf("requesting posts: HTTP %d", resp.StatusCode)
		}
		return posts.Response{}, fmt.Errorf("decoding posts: %w", err)
	}
	if out.Posts == nil && out.Error == "" && resp.StatusCode != http.StatusOK {
		return posts.Response{}, fmt.Errorf("requesting posts: HTTP %d", resp.StatusCode)
	}
	if out.Posts == nil {
		out.Posts = []posts.Item{}
	}
	return out, nil
}
