// Package metrics defines the Prometheus series exported on /metrics.
// Record helpers are safe to call on a nil *Metrics so packages can run
// without instrumentation in tests and CLI commands.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Query pipeline metrics
	QueriesTotal         *prometheus.CounterVec
	QueryDurationSeconds *prometheus.HistogramVec

	// LLM fallback metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec
	LLMFallbacksTotal  *prometheus.CounterVec
	LLMApologiesTotal  prometheus.Counter

	// Geocoding metrics
	GeocodeRequestsTotal   *prometheus.CounterVec
	GeocodeDedupTotal      prometheus.Counter
	GeocodeDurationSeconds prometheus.Histogram

	// Report metrics
	ReportsTotal *prometheus.CounterVec

	// Data metrics
	RecordsLoaded    prometheus.Gauge
	DatasetRowsTotal *prometheus.CounterVec

	// Webhook metrics
	WebhookEventsTotal     *prometheus.CounterVec
	WebhookDurationSeconds prometheus.Histogram

	// Rate limiter metrics
	RateLimitedTotal *prometheus.CounterVec
	RateLimiterKeys  *prometheus.GaugeVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_queries_total",
				Help: "Total number of answered queries by endpoint and reply category",
			},
			[]string{"endpoint", "category"}, // endpoint: query, query_by_location, line_text, line_location
		),

		QueryDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gw_query_duration_seconds",
				Help:    "Query processing duration in seconds by endpoint",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 15}, // Tail matches the LLM timeout
			},
			[]string{"endpoint"},
		),

		LLMRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_llm_requests_total",
				Help: "Total number of LLM provider calls by provider and status",
			},
			[]string{"provider", "status"}, // status: success, empty, error, timeout
		),

		LLMDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gw_llm_duration_seconds",
				Help:    "LLM provider call duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"provider"},
		),

		LLMFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_llm_fallbacks_total",
				Help: "Total number of switches from one LLM provider to the next",
			},
			[]string{"from", "to"},
		),

		LLMApologiesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gw_llm_apologies_total",
				Help: "Total number of fallback replies replaced by the fixed apology",
			},
		),

		GeocodeRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_geocode_requests_total",
				Help: "Total number of reverse-geocoding calls by status",
			},
			[]string{"status"}, // status: ok, zero_results, api_error, http_error
		),

		GeocodeDedupTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gw_geocode_dedup_total",
				Help: "Total number of geocoding calls that shared an in-flight lookup",
			},
		),

		GeocodeDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gw_geocode_duration_seconds",
				Help:    "Reverse-geocoding call duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),

		ReportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_reports_total",
				Help: "Total number of spreadsheet reports by status",
			},
			[]string{"status"}, // status: ok, not_found, error
		),

		RecordsLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gw_records_loaded",
				Help: "Number of groundwater records in the in-memory store",
			},
		),

		DatasetRowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_dataset_rows_total",
				Help: "Total number of dataset rows processed by status",
			},
			[]string{"status"}, // status: upserted, rejected
		),

		WebhookEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_webhook_events_total",
				Help: "Total number of LINE webhook events by type and status",
			},
			[]string{"event_type", "status"}, // status: success, error, ignored
		),

		WebhookDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gw_webhook_duration_seconds",
				Help:    "LINE webhook batch processing duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15, 30},
			},
		),

		RateLimitedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_rate_limited_total",
				Help: "Total number of requests dropped by a rate limiter",
			},
			[]string{"limiter"},
		),

		RateLimiterKeys: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gw_rate_limiter_keys",
				Help: "Number of keys currently tracked by a rate limiter",
			},
			[]string{"limiter"},
		),

		HTTPErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gw_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: bad_request, unauthorized, not_found, validation, internal
		),
	}
}

// RecordQuery counts an answered query and observes its duration.
func (m *Metrics) RecordQuery(endpoint, category string, duration float64) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(endpoint, category).Inc()
	m.QueryDurationSeconds.WithLabelValues(endpoint).Observe(duration)
}

// RecordLLMRequest counts one provider attempt.
func (m *Metrics) RecordLLMRequest(provider, status string, duration float64) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordLLMFallback counts a switch between providers.
func (m *Metrics) RecordLLMFallback(from, to string) {
	if m == nil {
		return
	}
	m.LLMFallbacksTotal.WithLabelValues(from, to).Inc()
}

// RecordLLMApology counts a reply replaced by the apology.
func (m *Metrics) RecordLLMApology() {
	if m == nil {
		return
	}
	m.LLMApologiesTotal.Inc()
}

// RecordGeocode counts a reverse-geocoding call.
func (m *Metrics) RecordGeocode(status string, duration float64) {
	if m == nil {
		return
	}
	m.GeocodeRequestsTotal.WithLabelValues(status).Inc()
	m.GeocodeDurationSeconds.Observe(duration)
}

// RecordGeocodeDedup counts a caller that joined an in-flight lookup.
func (m *Metrics) RecordGeocodeDedup() {
	if m == nil {
		return
	}
	m.GeocodeDedupTotal.Inc()
}

// RecordReport counts a spreadsheet export.
func (m *Metrics) RecordReport(status string) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(status).Inc()
}

// SetRecordsLoaded updates the record gauge.
func (m *Metrics) SetRecordsLoaded(n int) {
	if m == nil {
		return
	}
	m.RecordsLoaded.Set(float64(n))
}

// RecordDatasetRows adds n processed dataset rows.
func (m *Metrics) RecordDatasetRows(status string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DatasetRowsTotal.WithLabelValues(status).Add(float64(n))
}

// RecordWebhookEvent counts one LINE event.
func (m *Metrics) RecordWebhookEvent(eventType, status string) {
	if m == nil {
		return
	}
	m.WebhookEventsTotal.WithLabelValues(eventType, status).Inc()
}

// RecordWebhookBatch observes the duration of one webhook batch.
func (m *Metrics) RecordWebhookBatch(duration float64) {
	if m == nil {
		return
	}
	m.WebhookDurationSeconds.Observe(duration)
}

// RecordHTTPError counts an HTTP error response.
func (m *Metrics) RecordHTTPError(errorType, route string) {
	if m == nil {
		return
	}
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}

// RecordRateLimited counts a request dropped by limiter.
func (m *Metrics) RecordRateLimited(limiter string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(limiter).Inc()
}

// SetRateLimiterKeys updates the number of keys tracked by limiter.
func (m *Metrics) SetRateLimiterKeys(limiter string, n int) {
	if m == nil {
		return
	}
	m.RateLimiterKeys.WithLabelValues(limiter).Set(float64(n))
}
