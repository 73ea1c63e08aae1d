package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
)

const salemResponse = `{
	"status": "OK",
	"results": [{
		"formatted_address": "Salem, Tamil Nadu, India",
		"address_components": [
			{"long_name": "Salem", "short_name": "Salem", "types": ["locality", "political"]},
			{"long_name": "Tamil Nadu", "short_name": "TN", "types": ["administrative_area_level_1", "political"]}
		]
	}]
}`

func TestReverseGeocode_OK(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, salemResponse)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	c := newTestClient(srv.URL, WithMetrics(m))

	results, err := c.ReverseGeocode(context.Background(), 11.6643, 78.146)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Salem, Tamil Nadu, India", results[0].FormattedAddress)
	require.Len(t, results[0].AddressComponents, 2)
	assert.Equal(t, "TN", results[0].AddressComponents[1].ShortName)

	q := gotQuery.Load().(url.Values)
	assert.Equal(t, []string{"11.6643,78.146"}, q["latlng"])
	assert.Equal(t, []string{"test-key"}, q["key"])
	assert.InDelta(t, 1, testutil.ToFloat64(m.GeocodeRequestsTotal.WithLabelValues("ok")), 0)
}

func TestReverseGeocode_ZeroResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	c := newTestClient(srv.URL, WithMetrics(m))

	results, err := c.ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GeocodeRequestsTotal.WithLabelValues("zero_results")), 0)
}

func TestReverseGeocode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		statusCode   int
		body         string
		wantStatus   string
		wantUpstream bool
	}{
		{"api denied", http.StatusOK, `{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`, "api_error", true},
		{"over limit", http.StatusOK, `{"status": "OVER_QUERY_LIMIT", "results": []}`, "api_error", true},
		{"http 500", http.StatusInternalServerError, `oops`, "http_error", true},
		{"bad json", http.StatusOK, `{not json`, "http_error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			m := metrics.New(prometheus.NewRegistry())
			c := newTestClient(srv.URL, WithMetrics(m))

			_, err := c.ReverseGeocode(context.Background(), 1, 2)
			require.Error(t, err)
			assert.Equal(t, tt.wantUpstream, domerrors.IsUpstreamUnavailable(err))
			assert.InDelta(t, 1, testutil.ToFloat64(m.GeocodeRequestsTotal.WithLabelValues(tt.wantStatus)), 0)
		})
	}
}

func TestReverseGeocode_NoAPIKey(t *testing.T) {
	t.Parallel()

	c := NewClient("")
	assert.False(t, c.Enabled())

	_, err := c.ReverseGeocode(context.Background(), 1, 2)
	require.ErrorIs(t, err, ErrNoAPIKey)
	assert.ErrorIs(t, err, domerrors.ErrNotConfigured)
}

func TestReverseGeocode_CancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, salemResponse)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ReverseGeocode(ctx, 1, 2)
	require.Error(t, err)
}

func TestReverseGeocode_CollapsesConcurrentLookups(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
		_, _ = io.WriteString(w, salemResponse)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	c := newTestClient(srv.URL, WithMetrics(m))

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Go(func() {
			_, err := c.ReverseGeocode(context.Background(), 11.6643, 78.146)
			errs <- err
		})
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	// Every caller either reached the server or joined an in-flight lookup.
	dedup := testutil.ToFloat64(m.GeocodeDedupTotal)
	assert.InDelta(t, callers, float64(calls.Load())+dedup, 0)
	assert.InDelta(t, float64(calls.Load()), testutil.ToFloat64(m.GeocodeRequestsTotal.WithLabelValues("ok")), 0)
}
