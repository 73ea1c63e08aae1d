// Package ratelimit throttles callers with one token bucket per key.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/garyellow/groundwater-bot-go/internal/metrics"
)

const defaultCleanupPeriod = 5 * time.Minute

// KeyedConfig configures a KeyedLimiter instance.
type KeyedConfig struct {
	// Name labels this limiter in metrics (e.g. "line_user").
	Name string

	// Token bucket settings
	Burst     int     // Maximum tokens (burst capacity)
	PerMinute float64 // Tokens refilled per minute

	// Optional metrics reporter
	Metrics *metrics.Metrics

	// CleanupPeriod is how often idle keys are dropped. Zero means five minutes.
	CleanupPeriod time.Duration
}

// KeyedLimiter tracks a rate limit per key (e.g. LINE user ID). Keys whose
// bucket has refilled completely are forgotten on the next cleanup.
type KeyedLimiter struct {
	mu       sync.Mutex
	entries  map[string]*rate.Limiter
	config   KeyedConfig
	limit    rate.Limit
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewKeyedLimiter creates a per-key limiter and starts its cleanup loop.
// Call Stop when done.
//
//	limiter := NewKeyedLimiter(KeyedConfig{
//	    Name:      "line_user",
//	    Burst:     5,
//	    PerMinute: 6,
//	})
//	defer limiter.Stop()
//
//	if limiter.Allow(userID) {
//	    // Process message
//	}
func NewKeyedLimiter(cfg KeyedConfig) *KeyedLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = defaultCleanupPeriod
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}

	kl := &KeyedLimiter{
		entries: make(map[string]*rate.Limiter),
		config:  cfg,
		limit:   rate.Limit(cfg.PerMinute / 60),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go kl.cleanupLoop()
	return kl
}

// Allow consumes a token for key and reports whether the request may proceed.
// An empty key is never limited.
func (kl *KeyedLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	kl.mu.Lock()
	l, ok := kl.entries[key]
	if !ok {
		l = rate.NewLimiter(kl.limit, kl.config.Burst)
		kl.entries[key] = l
	}
	kl.mu.Unlock()

	if l.AllowN(kl.now(), 1) {
		return true
	}
	kl.config.Metrics.RecordRateLimited(kl.config.Name)
	return false
}

// ActiveCount returns the number of tracked keys.
func (kl *KeyedLimiter) ActiveCount() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(kl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-kl.stopCh:
			return
		case <-ticker.C:
			kl.cleanup()
		}
	}
}

// cleanup drops keys whose bucket is full, since they carry no state.
func (kl *KeyedLimiter) cleanup() {
	now := kl.now()
	burst := float64(kl.config.Burst)

	kl.mu.Lock()
	for key, l := range kl.entries {
		if l.TokensAt(now) >= burst {
			delete(kl.entries, key)
		}
	}
	n := len(kl.entries)
	kl.mu.Unlock()

	kl.config.Metrics.SetRateLimiterKeys(kl.config.Name, n)
}

// Stop ends the cleanup loop. Safe to call multiple times.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() { close(kl.stopCh) })
}
