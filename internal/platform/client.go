// Package platform is a rate-limited HTTP client for the agent platform's
// read API. It fetches the agent and connection collections that the
// visualization engine consumes; everything else the platform does
// (registration, calls, webhooks) is out of scope here.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentviz/agentviz/internal/agent"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit caps polling at 5 requests per second so a tight watch
	// interval cannot hammer the platform.
	RateLimit = 5.0

	// maxResponseBody caps how much of a response is read (8MB).
	maxResponseBody = 8 << 20
)

// Client is a rate-limited HTTP client for the platform read API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key sent on each request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a platform client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// agentsResponse matches the platform's agents envelope.
type agentsResponse struct {
	Agents []agent.Agent `json:"agents"`
}

// connectionsResponse matches the platform's connections envelope.
type connectionsResponse struct {
	Connections []agent.Connection `json:"connections"`
}

// FetchAgents retrieves the current agent collection.
func (c *Client) FetchAgents(ctx context.Context) ([]agent.Agent, error) {
	var resp agentsResponse
	if err := c.get(ctx, "/api/agents", &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

// FetchConnections retrieves the current connection collection.
func (c *Client) FetchConnections(ctx context.Context) ([]agent.Connection, error) {
	var resp connectionsResponse
	if err := c.get(ctx, "/api/connections", &resp); err != nil {
		return nil, err
	}
	return resp.Connections, nil
}

// FetchSnapshot retrieves agents and connections as one snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (*agent.Snapshot, error) {
	agents, err := c.FetchAgents(ctx)
	if err != nil {
		return nil, err
	}
	connections, err := c.FetchConnections(ctx)
	if err != nil {
		return nil, err
	}
	return &agent.Snapshot{Agents: agents, Connections: connections}, nil
}

// get performs a rate-limited GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}
	return nil
}
