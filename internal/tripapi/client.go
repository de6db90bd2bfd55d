// Package tripapi contains a client for fetching trip lifecycle events
// from the remote trip event API.
package tripapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripdash/internal/event"
)

// Client fetches lifecycle events for a trip over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client against the given API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Events fetches the full event sequence for a trip ID.
func (c *Client) Events(ctx context.Context, tripID string) ([]event.Event, error) {
	u := fmt.Sprintf("%s/v1/trips/%s/events", c.baseURL, url.PathEscape(tripID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trip api http status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return event.ParseEvents(body)
}
