// Package geocode resolves coordinates to place names via the Google
// Geocoding API.
package geocode

import (
	"net/http"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/garyellow/groundwater-bot-go/internal/config"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
)

// AddressComponent is one piece of a geocoded address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Result is a single reverse-geocoding candidate.
type Result struct {
	AddressComponents []AddressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the outbound requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		burst := max(int(rps), 1)
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records request outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client is a throttled reverse-geocoding client. Concurrent lookups of the
// same coordinates share one upstream request.
type Client struct {
	httpClient *http.Client
	apiKey     string
	limiter    *rate.Limiter
	group      singleflight.Group
	metrics    *metrics.Metrics
}

// NewClient creates a Client. An empty apiKey yields a client whose lookups
// fail with ErrNoAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: config.GeocodeRequest},
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}
