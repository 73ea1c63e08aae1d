package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoAPIKey is returned when no Google Maps API key is configured.
var ErrNoAPIKey = fmt.Errorf("geocode: google api key: %w", domerrors.ErrNotConfigured)

type googleGeocodeResponse struct {
	Results      []Result `json:"results"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
}

// ReverseGeocode returns the address candidates for a coordinate pair. A
// ZERO_RESULTS response yields an empty slice and no error.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) ([]Result, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}

	latlng := formatCoord(lat) + "," + formatCoord(lng)
	leader := false
	v, err, shared := c.group.Do(latlng, func() (any, error) {
		leader = true
		return c.reverseGeocode(ctx, latlng)
	})
	if shared && !leader {
		c.metrics.RecordGeocodeDedup()
	}
	if err != nil {
		return nil, err
	}
	return v.([]Result), nil
}

func (c *Client) reverseGeocode(ctx context.Context, latlng string) ([]Result, error) {
	start := time.Now()
	status := "http_error"
	defer func() {
		c.metrics.RecordGeocode(status, time.Since(start).Seconds())
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: google rate limit")
	}

	params := url.Values{
		"latlng": {latlng},
		"key":    {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleGeocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, domerrors.NewUpstreamError("geocode", resp.StatusCode,
			eris.Errorf("geocode: google returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var googleResp googleGeocodeResponse
	if err := json.Unmarshal(body, &googleResp); err != nil {
		return nil, eris.Wrap(err, "geocode: google parse response")
	}

	switch googleResp.Status {
	case "OK":
		status = "ok"
		return googleResp.Results, nil
	case "ZERO_RESULTS":
		status = "zero_results"
		return []Result{}, nil
	default:
		status = "api_error"
		return nil, domerrors.NewUpstreamError("geocode", 0,
			eris.Errorf("geocode: google api status %s: %s", googleResp.Status, googleResp.ErrorMessage))
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
