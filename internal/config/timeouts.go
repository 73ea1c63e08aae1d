package config

import "time"

// Timeout constants.
//
// LINE expects a quick 200 on the webhook, so events are processed after the
// ack under WebhookProcessing. Outbound calls (LLM, geocoding) get their own
// shorter budgets so a reply is always sent within the webhook window.

// HTTP server timeouts
const (
	// HTTPRead bounds reading a request. Query bodies and LINE payloads are small.
	HTTPRead = 10 * time.Second

	// HTTPWrite must cover LLMRequest plus serialization of the reply.
	HTTPWrite = 30 * time.Second

	// HTTPIdle is the keep-alive idle timeout.
	HTTPIdle = 120 * time.Second
)

// Webhook timeouts
const (
	// WebhookProcessing bounds processing of one LINE webhook batch after the ack.
	WebhookProcessing = 30 * time.Second
)

// Outbound call timeouts
const (
	// LLMRequest is the default budget for the whole fallback provider chain.
	LLMRequest = 15 * time.Second

	// GeocodeRequest is the default timeout for one reverse-geocoding call.
	GeocodeRequest = 10 * time.Second

	// R2Request bounds a single object download or upload.
	R2Request = 60 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is the SQLite busy_timeout pragma value.
	DatabaseBusyTimeout = 30 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	DatabaseConnMaxLifetime = time.Hour

	// SlowQueryThreshold marks queries that are logged as slow.
	SlowQueryThreshold = 500 * time.Millisecond
)

// Health checks
const (
	// ReadinessCheck bounds the DB ping behind /readyz.
	ReadinessCheck = 3 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the default timeout for graceful server shutdown.
	GracefulShutdown = 30 * time.Second
)
