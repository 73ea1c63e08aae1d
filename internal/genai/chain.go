package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
)

// ErrNoProvider is returned by an empty chain.
var ErrNoProvider = fmt.Errorf("genai: no LLM provider: %w", domerrors.ErrNotConfigured)

// ErrEmptyResponse is returned when a provider answered with no text.
var ErrEmptyResponse = errors.New("genai: empty response")

// Chain tries responders in order, once each.
type Chain struct {
	responders []Responder
	metrics    *metrics.Metrics
}

// NewChain wraps responders in try order. Nil responders are skipped.
func NewChain(m *metrics.Metrics, responders ...Responder) *Chain {
	c := &Chain{metrics: m}
	for _, r := range responders {
		if r != nil {
			c.responders = append(c.responders, r)
		}
	}
	return c
}

// Len returns the number of providers in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.responders)
}

// Providers returns the providers in try order.
func (c *Chain) Providers() []Provider {
	if c == nil {
		return nil
	}
	out := make([]Provider, len(c.responders))
	for i, r := range c.responders {
		out[i] = r.Provider()
	}
	return out
}

// Respond returns the first reply that is not blank, unmodified. A provider error moves
// to the next provider unless ClassifyError says the failure is permanent;
// an empty reply always moves on.
func (c *Chain) Respond(ctx context.Context, prompt string) (string, error) {
	if c.Len() == 0 {
		return "", ErrNoProvider
	}

	var errs []error
	for i, r := range c.responders {
		provider := r.Provider()
		start := time.Now()
		text, err := r.Respond(ctx, prompt)
		duration := time.Since(start)

		if err == nil {
			if strings.TrimSpace(text) != "" {
				c.metrics.RecordLLMRequest(provider.String(), "success", duration.Seconds())
				return text, nil
			}
			err = fmt.Errorf("%s: %w", provider, ErrEmptyResponse)
			c.metrics.RecordLLMRequest(provider.String(), "empty", duration.Seconds())
		} else {
			c.metrics.RecordLLMRequest(provider.String(), requestStatus(err), duration.Seconds())
		}
		errs = append(errs, err)

		action := ClassifyError(err)
		if errors.Is(err, ErrEmptyResponse) {
			action = ActionFallback
		}
		slog.WarnContext(ctx, "LLM provider failed",
			"provider", provider,
			"action", action,
			"duration_ms", duration.Milliseconds(),
			"error", err)

		if action == ActionFail || ctx.Err() != nil {
			break
		}
		if i+1 < len(c.responders) {
			next := c.responders[i+1].Provider()
			c.metrics.RecordLLMFallback(provider.String(), next.String())
			slog.InfoContext(ctx, "falling back to next provider",
				"from", provider,
				"to", next)
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		errs = append(errs, domerrors.ErrTimeout)
	}
	return "", fmt.Errorf("%w: all providers failed: %w", domerrors.ErrUpstreamUnavailable, errors.Join(errs...))
}

// Close closes every responder.
func (c *Chain) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, r := range c.responders {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

func requestStatus(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
