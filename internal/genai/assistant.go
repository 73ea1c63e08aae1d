package genai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
)

// Apology is returned whenever no provider produced a reply.
const Apology = "I am unable to provide a general response at this moment."

// ConversationalPrompt builds the prompt for a message the classifier could
// not handle. language is the requested reply language code.
func ConversationalPrompt(language, message string) string {
	return "The user is asking a question in English. The reply must be in " + language +
		" and conversational.\nUser query: " + message
}

// responder is the subset of Chain the Assistant needs.
type responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// Assistant answers free-text questions and never fails: any error, timeout
// or empty reply becomes Apology.
type Assistant struct {
	responder responder
	timeout   time.Duration
	metrics   *metrics.Metrics
}

// NewAssistant wraps r. A nil r always yields Apology; timeout <= 0 disables
// the extra deadline.
func NewAssistant(r responder, timeout time.Duration, m *metrics.Metrics) *Assistant {
	return &Assistant{responder: r, timeout: timeout, metrics: m}
}

// Reply asks the model about message and returns its reply in language.
func (a *Assistant) Reply(ctx context.Context, message, language string) string {
	if a == nil || a.responder == nil {
		a.recordApology()
		return Apology
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.responder.Respond(ctx, ConversationalPrompt(language, message))
	switch {
	case errors.Is(err, domerrors.ErrNotConfigured):
		slog.DebugContext(ctx, "fallback reply skipped: no LLM provider")
	case err != nil:
		slog.WarnContext(ctx, "fallback reply unavailable",
			"timeout", errors.Is(err, domerrors.ErrTimeout),
			"error", err)
	case text == "":
		slog.WarnContext(ctx, "fallback reply empty")
	default:
		return text
	}
	a.recordApology()
	return Apology
}

func (a *Assistant) recordApology() {
	if a == nil {
		return
	}
	a.metrics.RecordLLMApology()
}
