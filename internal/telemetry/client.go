// Package telemetry talks to the remote metrics service: a one-shot pairing
// check after connecting, then periodic polls that feed the dashboard.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBodySize bounds metric payload reads. The real payload is well
// under 2KB; anything larger is a misbehaving server.
const maxResponseBodySize = 64 << 10

// DefaultTimeout bounds each request. The request blocks the main loop, so
// it must resolve comfortably inside the 2s poll period under normal
// conditions and not stall the loop for long when the server is gone.
const DefaultTimeout = 3 * time.Second

// Sample is one decoded metrics payload.
type Sample struct {
	CPUPercent    float64
	RAMPercent    float64
	DiskPercent   float64
	UptimeSeconds uint32
	Timestamp     string
}

// metricsBody mirrors the remote service's JSON shape.
type metricsBody struct {
	CPU    float64 `json:"cpu"`
	Memory struct {
		Percentage float64 `json:"percentage"`
	} `json:"memory"`
	Disk struct {
		Percentage float64 `json:"percentage"`
	} `json:"disk"`
	Uptime struct {
		UptimeSeconds uint32 `json:"uptime_seconds"`
	} `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Client issues authenticated requests against the remote metrics endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
	deviceID   string
	timeout    time.Duration
}

// NewClient creates a Client for the given server base URL (http://host:port),
// bearer token, and device identity.
func NewClient(baseURL, token, deviceID string) *Client {
	return &Client{
		httpClient: &http.Client{
			// Per-request timeouts via context; keep-alives reuse the
			// single connection between 2s polls.
			Transport: &http.Transport{
				MaxIdleConns:    2,
				IdleConnTimeout: 60 * time.Second,
			},
		},
		url:      baseURL + "/metrics",
		token:    token,
		deviceID: deviceID,
		timeout:  DefaultTimeout,
	}
}

// SetTimeout overrides the per-request timeout. Used by tests.
func (c *Client) SetTimeout(d time.Duration) { c.timeout = d }

func (c *Client) get(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.deviceID != "" {
		req.Header.Set("X-Device-Id", c.deviceID)
	}
	return c.httpClient.Do(req)
}

// Fetch performs one metrics GET and decodes the response. A non-200 status
// or a body that fails to decode is an error; the caller skips the tick.
func (c *Client) Fetch(ctx context.Context) (Sample, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.get(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("metrics request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Sample{}, fmt.Errorf("metrics request: status %d", resp.StatusCode)
	}

	var body metricsBody
	limited := io.LimitReader(resp.Body, maxResponseBodySize)
	if err := json.NewDecoder(limited).Decode(&body); err != nil {
		return Sample{}, fmt.Errorf("decode metrics: %w", err)
	}

	return Sample{
		CPUPercent:    body.CPU,
		RAMPercent:    body.Memory.Percentage,
		DiskPercent:   body.Disk.Percentage,
		UptimeSeconds: body.Uptime.UptimeSeconds,
		Timestamp:     body.Timestamp,
	}, nil
}

// Pair performs the one-shot verification call after a station connection.
// Any 2xx response means the stored credential works. Failure is non-fatal:
// the device proceeds to the dashboard and polling retries independently.
func (c *Client) Pair(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.get(ctx)
	if err != nil {
		return fmt.Errorf("pairing request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("pairing request: status %d", resp.StatusCode)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	if t, ok := c.httpClient.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}
