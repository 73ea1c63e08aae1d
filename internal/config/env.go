package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "GW_PORT"
	EnvLogLevel        = "GW_LOG_LEVEL"
	EnvShutdownTimeout = "GW_SHUTDOWN_TIMEOUT"
	EnvCORSOrigins     = "GW_CORS_ALLOWED_ORIGINS"

	// Data
	EnvDataDir     = "GW_DATA_DIR"
	EnvDatasetPath = "GW_DATASET_PATH"

	// R2 Object Storage
	EnvR2AccountID       = "GW_R2_ACCOUNT_ID"
	EnvR2AccessKeyID     = "GW_R2_ACCESS_KEY_ID"
	EnvR2SecretAccessKey = "GW_R2_SECRET_ACCESS_KEY"
	EnvR2BucketName      = "GW_R2_BUCKET_NAME"

	// LLM Fallback
	EnvLLMProviders   = "GW_LLM_PROVIDERS"
	EnvLLMTimeout     = "GW_LLM_TIMEOUT"
	EnvLLMMaxTokens   = "GW_LLM_MAX_TOKENS"
	EnvGeminiAPIKey   = "GW_GEMINI_API_KEY"
	EnvGroqAPIKey     = "GW_GROQ_API_KEY"
	EnvCerebrasAPIKey = "GW_CEREBRAS_API_KEY"
	EnvGeminiModel    = "GW_GEMINI_MODEL"
	EnvGroqModel      = "GW_GROQ_MODEL"
	EnvCerebrasModel  = "GW_CEREBRAS_MODEL"

	// Reverse Geocoding
	EnvGoogleMapsAPIKey = "GW_GOOGLE_MAPS_API_KEY"
	EnvGeocodeTimeout   = "GW_GEOCODE_TIMEOUT"
	EnvGeocodeRPS       = "GW_GEOCODE_RPS"

	// LINE Channel
	EnvLineChannelAccessToken = "GW_LINE_CHANNEL_ACCESS_TOKEN"
	EnvLineChannelSecret      = "GW_LINE_CHANNEL_SECRET"
	EnvLineLanguage           = "GW_LINE_LANGUAGE"
	EnvLineUserRate           = "GW_LINE_USER_RATE_PER_MINUTE"
	EnvLineUserBurst          = "GW_LINE_USER_BURST"

	// Sentry
	EnvSentryDSN         = "GW_SENTRY_DSN"
	EnvSentryEnvironment = "GW_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "GW_SENTRY_SAMPLE_RATE"

	// Better Stack
	EnvBetterStackToken    = "GW_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "GW_BETTERSTACK_ENDPOINT"

	// Metrics Auth
	EnvMetricsAuthEnabled = "GW_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "GW_METRICS_USERNAME"
	EnvMetricsPassword    = "GW_METRICS_PASSWORD"
)
