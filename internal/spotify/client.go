package spotify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/spotsync/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// Client performs authenticated requests against the playlist-track surface
// of the Spotify Web API.
//
// Identical GET requests are memoized for the lifetime of the Client, so one
// process run never repeats a read it has already made. The cache dies with
// the Client and is never persisted.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	limiter    *rate.Limiter
	getCache   map[string][]byte
}

// NewClient creates a Client for the given API base URL.
// An empty baseURL selects the production API; a nil client selects [http.DefaultClient].
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		getCache:   make(map[string][]byte),
	}
}

// SetToken sets the bearer token used to authorize all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// request performs a rate-limited HTTP request and returns the response body.
// Any transport error or non-2xx status is reported as [shared.ErrAPIRequest].
func (c *Client) request(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return data, nil
}

// cacheableGet performs a GET request, memoizing successful responses by URL
// for the lifetime of the Client. Failures are never cached.
func (c *Client) cacheableGet(ctx context.Context, rawURL string) ([]byte, error) {
	if cached, ok := c.getCache[rawURL]; ok {
		return cached, nil
	}

	data, err := c.request(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	c.getCache[rawURL] = data
	return data, nil
}
