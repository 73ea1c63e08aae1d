// Package webhook serves the LINE Messaging API webhook. Message events are
// answered by the bot processor and replied to with the Messaging API.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/garyellow/groundwater-bot-go/internal/bot"
	"github.com/garyellow/groundwater-bot-go/internal/config"
	"github.com/garyellow/groundwater-bot-go/internal/ctxutil"
	"github.com/garyellow/groundwater-bot-go/internal/logger"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
)

// LINE delivers at most this many events per webhook request.
const maxEventsPerWebhook = 100

// MessageProcessor turns a message event into reply messages.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, event webhook.MessageEvent, language string) []messaging_api.MessageInterface
}

// Replier sends reply messages. *messaging_api.MessagingApiAPI satisfies it.
type Replier interface {
	ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
}

// UserLimiter decides whether a user may send another message.
type UserLimiter interface {
	Allow(userID string) bool
}

// Handler handles LINE webhook requests.
type Handler struct {
	channelSecret string
	language      string
	timeout       time.Duration
	replier       Replier
	processor     MessageProcessor
	userLimiter   UserLimiter
	metrics       *metrics.Metrics
	logger        *logger.Logger
	wg            sync.WaitGroup
}

// HandlerConfig holds configuration for creating a new Handler.
type HandlerConfig struct {
	ChannelSecret string
	ChannelToken  string
	Language      string
	Processor     MessageProcessor
	Metrics       *metrics.Metrics
	Logger        *logger.Logger

	// UserLimiter drops messages from users over their rate. Nil disables it.
	UserLimiter UserLimiter

	// Replier overrides the Messaging API client built from ChannelToken.
	Replier Replier
	// Timeout bounds the processing of one event. Zero means
	// config.WebhookProcessing.
	Timeout time.Duration
}

// NewHandler creates a webhook handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.ChannelSecret == "" {
		return nil, errors.New("webhook: channel secret is required")
	}
	if cfg.Processor == nil {
		return nil, errors.New("webhook: processor is required")
	}

	replier := cfg.Replier
	if replier == nil {
		client, err := messaging_api.NewMessagingApiAPI(cfg.ChannelToken)
		if err != nil {
			return nil, fmt.Errorf("create messaging API client: %w", err)
		}
		replier = client
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewWithWriter("error", io.Discard)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.WebhookProcessing
	}

	return &Handler{
		channelSecret: cfg.ChannelSecret,
		language:      cfg.Language,
		timeout:       timeout,
		replier:       replier,
		processor:     cfg.Processor,
		userLimiter:   cfg.UserLimiter,
		metrics:       cfg.Metrics,
		logger:        log,
	}, nil
}

// Handle is the gin handler for the webhook endpoint. It verifies the
// signature, acknowledges with 200 and processes the batch in the
// background.
func (h *Handler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.WarnContext(c.Request.Context(), "Invalid webhook signature")
			c.Status(http.StatusBadRequest)
		} else {
			h.logger.WithError(err).ErrorContext(c.Request.Context(), "Failed to parse webhook request")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)

	events := cb.Events
	if len(events) > maxEventsPerWebhook {
		h.logger.Warn("Too many events in webhook batch; truncating",
			"event_count", len(events),
			"limit", maxEventsPerWebhook,
		)
		events = events[:maxEventsPerWebhook]
	}
	events = append([]webhook.EventInterface(nil), events...)
	baseCtx := ctxutil.PreserveTracing(c.Request.Context())

	h.wg.Go(func() {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("Panic in async event processing", "panic", r)
			}
			h.metrics.RecordWebhookBatch(time.Since(start).Seconds())
		}()

		for _, event := range events {
			h.processEvent(baseCtx, event)
		}
	})
}

func (h *Handler) processEvent(ctx context.Context, event webhook.EventInterface) {
	e, ok := event.(webhook.MessageEvent)
	if !ok {
		eventType := eventTypeOf(event)
		h.metrics.RecordWebhookEvent(eventType, "ignored")
		h.logger.DebugContext(ctx, "Unsupported event type", "event_type", eventType)
		return
	}

	if e.WebhookEventId != "" {
		ctx = ctxutil.WithRequestID(ctx, e.WebhookEventId)
	}
	if h.userLimiter != nil && !h.userLimiter.Allow(bot.GetUserID(e.Source)) {
		h.logger.DebugContext(ctx, "User rate limited, dropping message")
		h.metrics.RecordWebhookEvent("message", "rate_limited")
		return
	}
	if e.DeliveryContext != nil && e.DeliveryContext.IsRedelivery {
		h.logger.InfoContext(ctx, "Processing redelivered event")
	}

	eventCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	messages := h.processor.ProcessMessage(eventCtx, e, h.language)
	if len(messages) == 0 {
		h.metrics.RecordWebhookEvent("message", "ignored")
		return
	}
	if e.ReplyToken == "" {
		h.logger.DebugContext(ctx, "Empty reply token, skipping reply")
		h.metrics.RecordWebhookEvent("message", "no_reply_token")
		return
	}

	if _, err := h.replier.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: e.ReplyToken,
		Messages:   messages,
	}); err != nil {
		if strings.Contains(err.Error(), "Invalid reply token") {
			h.logger.DebugContext(ctx, "Reply token already used or invalid", "error", err)
		} else {
			h.logger.ErrorContext(ctx, "Failed to send reply", "error", err)
		}
		h.metrics.RecordWebhookEvent("message", "reply_error")
		return
	}

	h.metrics.RecordWebhookEvent("message", "success")
	h.logger.InfoContext(ctx, "Event processed",
		"message_type", e.Message.GetType(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func eventTypeOf(event webhook.EventInterface) string {
	if event == nil {
		return "unknown"
	}
	if t := event.GetType(); t != "" {
		return t
	}
	return "unknown"
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	c := make(chan struct{})
	go func() {
		defer close(c)
		h.wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
