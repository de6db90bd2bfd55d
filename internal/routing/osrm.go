// Package routing fetches driving routes from an OSRM-compatible
// routing service. Route failures are expected and non-fatal: the map
// degrades to markers only.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultBaseURL is the public OSRM demo server.
const DefaultBaseURL = "https://router.project-osrm.org"

// ErrTooFewWaypoints is returned when a route needs at least two points.
var ErrTooFewWaypoints = errors.New("routing: need at least two waypoints")

// Waypoint is an input point in WGS84.
type Waypoint struct {
	Lat float64
	Lng float64
}

// Route is the decoded driving route.
type Route struct {
	Line           orb.LineString
	DistanceMeters float64
	DurationSec    float64
}

// Client talks to one OSRM-compatible endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a routing client. An empty baseURL falls back to the
// public demo server.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type osrmResponse struct {
	Routes []struct {
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// Drive requests a full-overview driving route through the waypoints in
// order. OSRM takes and returns lng,lat pairs.
func (c *Client) Drive(ctx context.Context, waypoints []Waypoint) (*Route, error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}
	coords := make([]string, len(waypoints))
	for i, w := range waypoints {
		coords[i] = fmt.Sprintf("%f,%f", w.Lng, w.Lat)
	}
	u := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson",
		c.baseURL, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm http status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded osrmResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w", err)
	}
	if len(decoded.Routes) == 0 || decoded.Routes[0].Geometry == nil {
		return nil, errors.New("osrm returned no routes")
	}

	line, ok := decoded.Routes[0].Geometry.Geometry().(orb.LineString)
	if !ok {
		return nil, errors.New("osrm geometry is not a LineString")
	}
	return &Route{
		Line:           line,
		DistanceMeters: decoded.Routes[0].Distance,
		DurationSec:    decoded.Routes[0].Duration,
	}, nil
}
