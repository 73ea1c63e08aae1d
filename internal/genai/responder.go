package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoAPIKey is returned when a responder is built without a key.
var ErrNoAPIKey = errors.New("genai: API key is required")

// ResponderConfig configures a single provider.
type ResponderConfig struct {
	Provider  Provider
	APIKey    string
	Model     string // empty uses DefaultModels
	MaxTokens int    // <= 0 uses the package default

	// BaseURL overrides the provider endpoint.
	BaseURL string
	// HTTPClient overrides the SDK's HTTP client.
	HTTPClient *http.Client
}

func (c ResponderConfig) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModels[c.Provider]
}

func (c ResponderConfig) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}

// NewResponder builds the SDK-backed responder for cfg.Provider.
func NewResponder(ctx context.Context, cfg ResponderConfig) (Responder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrNoAPIKey)
	}
	switch {
	case cfg.Provider == ProviderGemini:
		return newGeminiResponder(ctx, cfg)
	case cfg.Provider.IsOpenAICompatible():
		return newOpenAIResponder(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %q", cfg.Provider)
	}
}
