// Package genai provides the fallback responder: a free-text reply from a
// chain of LLM providers, degrading to a fixed apology.
//
// Architecture:
//   - Gemini: google.golang.org/genai (official SDK)
//   - Groq/Cerebras: github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Each provider in the chain gets one attempt. Transient and quota errors move
// on to the next provider; permanent errors stop the chain.
package genai

import (
	"context"
	"fmt"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's API (OpenAI-compatible).
	ProviderGroq Provider = "groq"
	// ProviderCerebras represents Cerebras's API (OpenAI-compatible).
	ProviderCerebras Provider = "cerebras"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers.
// Gemini is not included as it uses a different SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq:     "https://api.groq.com/openai/v1/",
	ProviderCerebras: "https://api.cerebras.ai/v1/",
}

// Default models per provider, used when none is configured.
var DefaultModels = map[Provider]string{
	ProviderGemini:   "gemini-2.5-flash",
	ProviderGroq:     "llama-3.3-70b-versatile",
	ProviderCerebras: "llama-3.3-70b",
}

// ParseProvider validates a provider name.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(name); p {
	case ProviderGemini, ProviderGroq, ProviderCerebras:
		return p, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", name)
	}
}

// IsOpenAICompatible returns true if the provider uses OpenAI-compatible API.
func (p Provider) IsOpenAICompatible() bool {
	_, ok := ProviderEndpoint[p]
	return ok
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Responder produces a free-text reply to a prompt.
type Responder interface {
	// Respond returns the model's text. An empty string means the model
	// produced nothing usable.
	Respond(ctx context.Context, prompt string) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the responder.
	Close() error
}

// Generation settings shared by all providers.
const (
	temperature      = 0.3
	defaultMaxTokens = 1024
)
