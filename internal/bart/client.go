// Package bart is the HTTP client for the upstream BART public API. It
// owns the error taxonomy for upstream failures and normalizes the API's
// quirks (stray marker characters, numeric fields as strings) far enough
// that callers only see well-formed payloads or typed errors.
package bart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"edge.bartcommute.org/internal/metrics"
)

// Sentinel errors classifying upstream failures. Callers match with
// errors.Is to pick a response status.
var (
	// ErrUpstreamStatus is a non-success HTTP status from the BART API.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrUpstreamTimeout is an upstream call that exceeded the configured bound.
	ErrUpstreamTimeout = errors.New("upstream call timed out")
	// ErrMalformedResponse is an upstream body that failed to parse or was
	// missing expected fields.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// Client calls the upstream BART API. Every call is bounded by the
// http.Client timeout and honors context cancellation.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewClient builds a client for the given base URL and API key. The timeout
// applies to every upstream call. Metrics may be nil.
func NewClient(baseURL, apiKey string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: timeout,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		metrics: m,
	}
}

// Stations fetches the full station list.
func (c *Client) Stations(ctx context.Context) ([]RawStation, error) {
	body, err := c.get(ctx, "stations", "/stn.aspx", url.Values{"cmd": {"stns"}})
	if err != nil {
		return nil, err
	}

	var parsed stationsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: stations: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Root.Stations.Station) == 0 {
		return nil, fmt.Errorf("%w: stations: empty station list", ErrMalformedResponse)
	}
	return parsed.Root.Stations.Station, nil
}

// Routes fetches the full route list.
func (c *Client) Routes(ctx context.Context) ([]RawRoute, error) {
	body, err := c.get(ctx, "routes", "/route.aspx", url.Values{"cmd": {"routes"}})
	if err != nil {
		return nil, err
	}

	var parsed routesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: routes: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Root.Routes.Route) == 0 {
		return nil, fmt.Errorf("%w: routes: empty route list", ErrMalformedResponse)
	}
	return parsed.Root.Routes.Route, nil
}

// Estimates fetches the real-time destination groups for one station.
func (c *Client) Estimates(ctx context.Context, stationAbbr string) ([]RawETD, error) {
	body, err := c.get(ctx, "etd", "/etd.aspx", url.Values{"cmd": {"etd"}, "orig": {stationAbbr}})
	if err != nil {
		return nil, err
	}

	var parsed etdResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: etd %s: %v", ErrMalformedResponse, stationAbbr, err)
	}
	if len(parsed.Root.Station) == 0 {
		return nil, fmt.Errorf("%w: etd %s: missing station entry", ErrMalformedResponse, stationAbbr)
	}
	return parsed.Root.Station[0].ETD, nil
}

// Schedule fetches the scheduled itineraries for an origin/destination
// pair. The upstream prefixes attribute keys with "@" markers; they are
// stripped before decoding, a known upstream quirk.
func (c *Client) Schedule(ctx context.Context, origin, destination string) ([]map[string]any, error) {
	body, err := c.get(ctx, "sched", "/sched.aspx", url.Values{
		"cmd":  {"depart"},
		"date": {"now"},
		"orig": {origin},
		"dest": {destination},
	})
	if err != nil {
		return nil, err
	}

	body = bytes.ReplaceAll(body, []byte("@"), nil)

	var parsed scheduleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: sched %s-%s: %v", ErrMalformedResponse, origin, destination, err)
	}
	if parsed.Root.Schedule.Request.Trip == nil {
		return nil, fmt.Errorf("%w: sched %s-%s: missing trip list", ErrMalformedResponse, origin, destination)
	}
	for _, trip := range parsed.Root.Schedule.Request.Trip {
		if trip == nil {
			return nil, fmt.Errorf("%w: sched %s-%s: null trip entry", ErrMalformedResponse, origin, destination)
		}
	}
	return parsed.Root.Schedule.Request.Trip, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	params.Set("key", c.apiKey)
	params.Set("json", "y")
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countUpstream(endpoint, "error")
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, fmt.Errorf("%w: %s", ErrUpstreamTimeout, endpoint)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrUpstreamTimeout, endpoint)
		}
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.countUpstream(endpoint, "error")
		return nil, fmt.Errorf("%w: %s: status %d", ErrUpstreamStatus, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countUpstream(endpoint, "error")
		return nil, fmt.Errorf("%s: read body: %w", endpoint, err)
	}

	c.countUpstream(endpoint, "ok")
	return body, nil
}

func (c *Client) countUpstream(endpoint, outcome string) {
	if c.metrics != nil {
		c.metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	}
}
