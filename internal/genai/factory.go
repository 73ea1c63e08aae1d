package genai

import (
	"context"
	"log/slog"

	"github.com/garyellow/groundwater-bot-go/internal/metrics"
)

// Config selects and configures the providers of a Chain.
type Config struct {
	// Providers is the try order, e.g. ["gemini", "groq"].
	Providers []string
	APIKeys   map[Provider]string
	Models    map[Provider]string
	MaxTokens int
}

// NewChainFromConfig builds a Chain in cfg.Providers order. Providers without
// an API key, unknown names and duplicates are skipped; the result may be
// empty, in which case every reply is the apology.
func NewChainFromConfig(ctx context.Context, cfg Config, m *metrics.Metrics) *Chain {
	seen := make(map[Provider]bool, len(cfg.Providers))
	var responders []Responder

	for _, name := range cfg.Providers {
		provider, err := ParseProvider(name)
		if err != nil {
			slog.WarnContext(ctx, "skipping LLM provider", "provider", name, "error", err)
			continue
		}
		if seen[provider] {
			continue
		}
		seen[provider] = true

		key := cfg.APIKeys[provider]
		if key == "" {
			slog.InfoContext(ctx, "LLM provider has no API key, skipping", "provider", provider)
			continue
		}

		r, err := NewResponder(ctx, ResponderConfig{
			Provider:  provider,
			APIKey:    key,
			Model:     cfg.Models[provider],
			MaxTokens: cfg.MaxTokens,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to create LLM responder", "provider", provider, "error", err)
			continue
		}
		responders = append(responders, r)
	}

	chain := NewChain(m, responders...)
	if chain.Len() == 0 {
		slog.InfoContext(ctx, "no LLM provider configured, fallback replies will apologize")
	} else {
		slog.InfoContext(ctx, "LLM fallback chain configured", "providers", chain.Providers())
	}
	return chain
}
