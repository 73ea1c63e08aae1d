// Package config provides application configuration management.
// It loads settings from environment variables (optionally from a .env file)
// and validates them per run mode.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/garyellow/groundwater-bot-go/internal/sliceutil"
	"github.com/joho/godotenv"
)

// ValidationMode selects which settings are required.
type ValidationMode int

const (
	// ServerMode validates everything the HTTP service needs.
	ServerMode ValidationMode = iota
	// CLIMode only needs storage settings; external services are optional.
	CLIMode
)

func (m ValidationMode) String() string {
	switch m {
	case ServerMode:
		return "server"
	case CLIMode:
		return "cli"
	default:
		return "unknown"
	}
}

// Config holds all application configuration.
type Config struct {
	// Server
	Port               string
	LogLevel           string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Data
	DataDir     string // Directory holding the SQLite database
	DatasetPath string // Seeded at startup when set (path or r2://key)

	R2          R2Config
	LLM         LLMConfig
	Geocode     GeocodeConfig
	LINE        LINEConfig
	Sentry      SentryConfig
	BetterStack BetterStackConfig
	Metrics     MetricsConfig
}

// R2Config holds Cloudflare R2 credentials.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

// Enabled reports whether every R2 setting is present.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

// LLMConfig configures the fallback provider chain.
type LLMConfig struct {
	Providers []string // Provider order, e.g. gemini,groq
	Timeout   time.Duration
	MaxTokens int

	GeminiAPIKey   string
	GroqAPIKey     string
	CerebrasAPIKey string

	// Empty model names use the genai package defaults.
	GeminiModel   string
	GroqModel     string
	CerebrasModel string
}

// HasProvider reports whether at least one provider has an API key.
func (c LLMConfig) HasProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != "" || c.CerebrasAPIKey != ""
}

// GeocodeConfig configures reverse geocoding.
type GeocodeConfig struct {
	APIKey  string
	Timeout time.Duration
	RPS     float64
}

// LINEConfig configures the optional LINE channel.
type LINEConfig struct {
	ChannelAccessToken string
	ChannelSecret      string
	Language           string // Reply language for chat users

	// Per-user message throttle. A zero rate disables it.
	UserRatePerMinute float64
	UserBurst         int
}

// Enabled reports whether both LINE credentials are set.
func (c LINEConfig) Enabled() bool {
	return c.ChannelAccessToken != "" && c.ChannelSecret != ""
}

// SentryConfig configures error tracking. An empty DSN disables it.
type SentryConfig struct {
	DSN         string
	Environment string
	SampleRate  float64
}

// BetterStackConfig configures log shipping. An empty token disables it.
type BetterStackConfig struct {
	Token    string
	Endpoint string
}

// MetricsConfig configures /metrics basic auth.
type MetricsConfig struct {
	AuthEnabled bool
	Username    string
	Password    string
}

// Load reads configuration for ServerMode.
func Load() (*Config, error) {
	return LoadForMode(ServerMode)
}

// LoadForMode reads configuration from the environment and validates it for mode.
func LoadForMode(mode ValidationMode) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv(EnvPort, "10000"),
		LogLevel:           getEnv(EnvLogLevel, "info"),
		ShutdownTimeout:    getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		CORSAllowedOrigins: getListEnv(EnvCORSOrigins, []string{"*"}),

		DataDir:     getEnv(EnvDataDir, getDefaultDataDir()),
		DatasetPath: getEnv(EnvDatasetPath, ""),

		R2: R2Config{
			AccountID:       getEnv(EnvR2AccountID, ""),
			AccessKeyID:     getEnv(EnvR2AccessKeyID, ""),
			SecretAccessKey: getEnv(EnvR2SecretAccessKey, ""),
			BucketName:      getEnv(EnvR2BucketName, ""),
		},

		LLM: LLMConfig{
			Providers:      getListEnv(EnvLLMProviders, []string{"gemini", "groq"}),
			Timeout:        getDurationEnv(EnvLLMTimeout, LLMRequest),
			MaxTokens:      getIntEnv(EnvLLMMaxTokens, 1024),
			GeminiAPIKey:   getEnv(EnvGeminiAPIKey, ""),
			GroqAPIKey:     getEnv(EnvGroqAPIKey, ""),
			CerebrasAPIKey: getEnv(EnvCerebrasAPIKey, ""),
			GeminiModel:    getEnv(EnvGeminiModel, ""),
			GroqModel:      getEnv(EnvGroqModel, ""),
			CerebrasModel:  getEnv(EnvCerebrasModel, ""),
		},

		Geocode: GeocodeConfig{
			APIKey:  getEnv(EnvGoogleMapsAPIKey, ""),
			Timeout: getDurationEnv(EnvGeocodeTimeout, GeocodeRequest),
			RPS:     getFloatEnv(EnvGeocodeRPS, 10),
		},

		LINE: LINEConfig{
			ChannelAccessToken: getEnv(EnvLineChannelAccessToken, ""),
			ChannelSecret:      getEnv(EnvLineChannelSecret, ""),
			Language:           getEnv(EnvLineLanguage, "en"),
			UserRatePerMinute:  getFloatEnv(EnvLineUserRate, 6),
			UserBurst:          getIntEnv(EnvLineUserBurst, 5),
		},

		Sentry: SentryConfig{
			DSN:         getEnv(EnvSentryDSN, ""),
			Environment: getEnv(EnvSentryEnvironment, "production"),
			SampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),
		},

		BetterStack: BetterStackConfig{
			Token:    getEnv(EnvBetterStackToken, ""),
			Endpoint: getEnv(EnvBetterStackEndpoint, ""),
		},

		Metrics: MetricsConfig{
			AuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
			Username:    getEnv(EnvMetricsUsername, "prometheus"),
			Password:    getEnv(EnvMetricsPassword, ""),
		},
	}

	if err := cfg.ValidateForMode(mode); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for ServerMode.
func (c *Config) Validate() error {
	return c.ValidateForMode(ServerMode)
}

// ValidateForMode checks the configuration and reports every problem at once.
func (c *Config) ValidateForMode(mode ValidationMode) error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvDataDir))
	}

	if mode == ServerMode {
		if c.Port == "" {
			errs = append(errs, fmt.Errorf("%s is required", EnvPort))
		} else if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s must be a port number, got %q", EnvPort, c.Port))
		}
		if c.ShutdownTimeout <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
		}
		if c.LLM.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvLLMTimeout, c.LLM.Timeout))
		}
		if c.LLM.MaxTokens <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvLLMMaxTokens, c.LLM.MaxTokens))
		}
		if c.Geocode.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvGeocodeTimeout, c.Geocode.Timeout))
		}
		if c.Geocode.RPS <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvGeocodeRPS, c.Geocode.RPS))
		}
		if (c.LINE.ChannelAccessToken == "") != (c.LINE.ChannelSecret == "") {
			errs = append(errs, fmt.Errorf("%s and %s must be set together", EnvLineChannelAccessToken, EnvLineChannelSecret))
		}
		if c.LINE.UserRatePerMinute < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", EnvLineUserRate, c.LINE.UserRatePerMinute))
		}
		if c.LINE.UserRatePerMinute > 0 && c.LINE.UserBurst < 1 {
			errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", EnvLineUserBurst, c.LINE.UserBurst))
		}
		if c.Metrics.AuthEnabled && c.Metrics.Password == "" {
			errs = append(errs, fmt.Errorf("%s is required when %s is true", EnvMetricsPassword, EnvMetricsAuthEnabled))
		}
		if c.Sentry.SampleRate < 0 || c.Sentry.SampleRate > 1 {
			errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %v", EnvSentrySampleRate, c.Sentry.SampleRate))
		}
	}

	for _, p := range c.LLM.Providers {
		switch p {
		case "gemini", "groq", "cerebras":
		default:
			errs = append(errs, fmt.Errorf("%s: unknown provider %q", EnvLLMProviders, p))
		}
	}

	return errors.Join(errs...)
}

// SQLitePath returns the full path to the SQLite database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "groundwater.db")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated variable, dropping blank items and
// case-insensitive repeats.
// An empty result falls back to the default.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return sliceutil.Deduplicate(items, strings.ToLower)
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}
