// Package bot answers groundwater questions. It turns a free-text message or
// a coordinate pair into a localized reply and adapts LINE events onto the
// same pipeline.
package bot

import (
	"context"
	"errors"
	"io"
	"time"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/genai"
	"github.com/garyellow/groundwater-bot-go/internal/intent"
	"github.com/garyellow/groundwater-bot-go/internal/logger"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
	"github.com/garyellow/groundwater-bot-go/internal/reply"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
)

// Categories reported with each Answer, beyond the intent categories.
const (
	CategoryNoData     = "no_data"
	CategoryUnresolved = "unresolved"
)

// RecordStore looks up a record by canonical location key.
type RecordStore interface {
	Lookup(location string) (storage.Record, error)
}

// FallbackResponder answers messages no rule understood.
type FallbackResponder interface {
	Reply(ctx context.Context, message, language string) string
}

// Locator maps coordinates to a canonical location key.
type Locator interface {
	Locate(ctx context.Context, lat, lng float64) (string, bool)
}

// Answer is the reply to a query. Location is set only when a record was
// found.
type Answer struct {
	Reply    string `json:"reply"`
	Location string `json:"location,omitempty"`

	// Category labels the path that produced the reply, for metrics.
	Category string `json:"-"`
}

// Processor holds the query pipeline. It is safe for concurrent use.
type Processor struct {
	classifier *intent.Classifier
	records    RecordStore
	fallback   FallbackResponder
	locator    Locator
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// ProcessorConfig holds the dependencies of a Processor. Fallback and
// Locator may be nil.
type ProcessorConfig struct {
	Classifier *intent.Classifier
	Records    RecordStore
	Fallback   FallbackResponder
	Locator    Locator
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
}

// NewProcessor creates a query processor. A nil Logger discards output.
func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewWithWriter("error", io.Discard)
	}
	return &Processor{
		classifier: cfg.Classifier,
		records:    cfg.Records,
		fallback:   cfg.Fallback,
		locator:    cfg.Locator,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// Query answers a free-text message. Rules are tried in priority order and
// anything unmatched goes to the fallback responder.
func (p *Processor) Query(ctx context.Context, message, language string) Answer {
	lang := reply.Language(language)
	msg := intent.Normalize(message)
	result := p.classifier.Classify(msg)

	p.logger.DebugContext(ctx, "Message classified",
		"category", result.Category.String(),
		"location", result.Location,
		"query_type", string(result.QueryType),
	)

	switch result.Category {
	case intent.Greeting:
		return Answer{Reply: reply.Text(lang, reply.KeyGreeting, nil), Category: result.Category.String()}
	case intent.Definition, intent.DefinitionUnknown:
		return Answer{Reply: reply.Definition(lang, result.Term), Category: result.Category.String()}
	case intent.DataQuery:
		return p.answerRecord(ctx, result.Location, lang, result.QueryType)
	}

	text := genai.Apology
	if p.fallback != nil {
		text = p.fallback.Reply(ctx, msg, lang)
	}
	return Answer{Reply: text, Category: intent.Unknown.String()}
}

// QueryByLocation answers with the full report of the place at the given
// coordinates.
func (p *Processor) QueryByLocation(ctx context.Context, lat, lng float64, language string) Answer {
	lang := reply.Language(language)

	var (
		location string
		ok       bool
	)
	if p.locator != nil {
		location, ok = p.locator.Locate(ctx, lat, lng)
	}
	if !ok {
		return Answer{Reply: reply.Text(lang, reply.KeyUnknownRequest, nil), Category: CategoryUnresolved}
	}
	return p.answerRecord(ctx, location, lang, intent.QueryFull)
}

func (p *Processor) answerRecord(ctx context.Context, location, lang string, qt intent.QueryType) Answer {
	rec, err := p.records.Lookup(location)
	if err != nil {
		if !errors.Is(err, domerrors.ErrNotFound) {
			p.logger.WarnContext(ctx, "Record lookup failed", "location", location, "error", err)
		}
		return Answer{Reply: reply.NoData(lang, location), Category: CategoryNoData}
	}
	return Answer{
		Reply:    reply.Render(rec, lang, qt),
		Location: rec.Location,
		Category: intent.DataQuery.String(),
	}
}

// Observe records an answered query for endpoint.
func (p *Processor) Observe(endpoint string, a Answer, start time.Time) {
	p.metrics.RecordQuery(endpoint, a.Category, time.Since(start).Seconds())
}
