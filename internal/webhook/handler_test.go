package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyellow/groundwater-bot-go/internal/alias"
	"github.com/garyellow/groundwater-bot-go/internal/bot"
	"github.com/garyellow/groundwater-bot-go/internal/intent"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
	"github.com/garyellow/groundwater-bot-go/internal/records"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
)

const testSecret = "test_channel_secret"

type fakeReplier struct {
	mu       sync.Mutex
	requests []*messaging_api.ReplyMessageRequest
	err      error
}

func (f *fakeReplier) ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &messaging_api.ReplyMessageResponse{}, nil
}

func (f *fakeReplier) snapshot() []*messaging_api.ReplyMessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*messaging_api.ReplyMessageRequest(nil), f.requests...)
}

type fakeLocator struct{}

func (fakeLocator) Locate(context.Context, float64, float64) (string, bool) {
	return "Salem", true
}

func setupTestHandler(t *testing.T, language string, replier *fakeReplier) (*Handler, *metrics.Metrics) {
	t.Helper()

	m := metrics.New(prometheus.NewRegistry())
	processor := bot.NewProcessor(bot.ProcessorConfig{
		Classifier: intent.NewClassifier(alias.NewDefaultResolver()),
		Records: records.New([]storage.Record{{
			Location:         "Salem",
			GroundwaterLevel: 12.5,
			PH:               7.2,
			TDS:              450,
			COD:              20,
			BOD:              3.5,
			Status:           "Safe",
			LastUpdated:      "2024-05-01",
		}}),
		Locator: fakeLocator{},
		Metrics: m,
	})

	h, err := NewHandler(HandlerConfig{
		ChannelSecret: testSecret,
		Language:      language,
		Processor:     processor,
		Metrics:       m,
		Replier:       replier,
	})
	require.NoError(t, err)
	return h, m
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func post(t *testing.T, h *Handler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook/line", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", signature)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func drain(t *testing.T, h *Handler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.Shutdown(ctx))
}

const textEvent = `{
	"type": "message",
	"mode": "active",
	"timestamp": 1700000000000,
	"source": {"type": "user", "userId": "U1234567890"},
	"webhookEventId": "01HTEST0000000000000000001",
	"deliveryContext": {"isRedelivery": false},
	"replyToken": "reply-token-text",
	"message": {"type": "text", "id": "1001", "quoteToken": "q1", "text": "Salem level"}
}`

const locationEvent = `{
	"type": "message",
	"mode": "active",
	"timestamp": 1700000000001,
	"source": {"type": "user", "userId": "U1234567890"},
	"webhookEventId": "01HTEST0000000000000000002",
	"deliveryContext": {"isRedelivery": true},
	"replyToken": "reply-token-location",
	"message": {"type": "location", "id": "1002", "title": "Home", "address": "Salem", "latitude": 11.66, "longitude": 78.14}
}`

const followEvent = `{
	"type": "follow",
	"mode": "active",
	"timestamp": 1700000000002,
	"source": {"type": "user", "userId": "U1234567890"},
	"webhookEventId": "01HTEST0000000000000000003",
	"deliveryContext": {"isRedelivery": false},
	"replyToken": "reply-token-follow",
	"follow": {"isUnblocked": false}
}`

func batch(events ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"destination": "Ubot", "events": [`)
	for i, e := range events {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString(e)
	}
	buf.WriteString("]}")
	return buf.Bytes()
}

func TestNewHandler_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewHandler(HandlerConfig{Processor: bot.NewProcessor(bot.ProcessorConfig{})})
	require.Error(t, err)

	_, err = NewHandler(HandlerConfig{ChannelSecret: testSecret})
	require.Error(t, err)
}

func TestHandle_InvalidSignature(t *testing.T) {
	t.Parallel()

	replier := &fakeReplier{}
	h, _ := setupTestHandler(t, "en", replier)

	w := post(t, h, batch(textEvent), "invalid_signature")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	drain(t, h)
	assert.Empty(t, replier.snapshot())
}

func TestHandle_TextAndLocation(t *testing.T) {
	t.Parallel()

	replier := &fakeReplier{}
	h, m := setupTestHandler(t, "en", replier)

	body := batch(textEvent, locationEvent, followEvent)
	w := post(t, h, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)

	drain(t, h)

	reqs := replier.snapshot()
	require.Len(t, reqs, 2)

	assert.Equal(t, "reply-token-text", reqs[0].ReplyToken)
	require.Len(t, reqs[0].Messages, 1)
	assert.Equal(t, "Groundwater level in Salem: 12.5 m. Last updated: 2024-05-01.",
		reqs[0].Messages[0].(*messaging_api.TextMessage).Text)

	assert.Equal(t, "reply-token-location", reqs[1].ReplyToken)
	assert.Contains(t, reqs[1].Messages[0].(*messaging_api.TextMessage).Text, "Here is the full report for Salem:")

	assert.InDelta(t, 2, testutil.ToFloat64(m.WebhookEventsTotal.WithLabelValues("message", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.WebhookEventsTotal.WithLabelValues("follow", "ignored")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(bot.EndpointLineText, "data_query")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(bot.EndpointLineLocation, "data_query")), 0)
}

func TestHandle_ConfiguredLanguage(t *testing.T) {
	t.Parallel()

	replier := &fakeReplier{}
	h, _ := setupTestHandler(t, "ta", replier)

	body := batch(textEvent)
	require.Equal(t, http.StatusOK, post(t, h, body, sign(body)).Code)
	drain(t, h)

	reqs := replier.snapshot()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Salem இல் நிலத்தடி நீர் மட்டம்: 12.5 மீ. கடைசியாக புதுப்பிக்கப்பட்டது: 2024-05-01.",
		reqs[0].Messages[0].(*messaging_api.TextMessage).Text)
}

// allowFirst admits each user once.
type allowFirst struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (a *allowFirst) Allow(userID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seen[userID] {
		return false
	}
	a.seen[userID] = true
	return true
}

func TestHandle_UserRateLimited(t *testing.T) {
	t.Parallel()

	replier := &fakeReplier{}
	h, m := setupTestHandler(t, "en", replier)
	limiter := &allowFirst{seen: map[string]bool{}}
	h.userLimiter = limiter

	body := batch(textEvent, locationEvent)
	require.Equal(t, http.StatusOK, post(t, h, body, sign(body)).Code)
	drain(t, h)

	reqs := replier.snapshot()
	require.Len(t, reqs, 1)
	assert.Equal(t, "reply-token-text", reqs[0].ReplyToken)
	assert.True(t, limiter.seen["U1234567890"])
	assert.InDelta(t, 1, testutil.ToFloat64(m.WebhookEventsTotal.WithLabelValues("message", "rate_limited")), 0)
}

func TestHandle_ReplyError(t *testing.T) {
	t.Parallel()

	replier := &fakeReplier{err: errors.New("Invalid reply token")}
	h, m := setupTestHandler(t, "en", replier)

	body := batch(textEvent)
	require.Equal(t, http.StatusOK, post(t, h, body, sign(body)).Code)
	drain(t, h)

	assert.Len(t, replier.snapshot(), 1)
	assert.InDelta(t, 1, testutil.ToFloat64(m.WebhookEventsTotal.WithLabelValues("message", "reply_error")), 0)
}

func TestHandle_EmptyBatch(t *testing.T) {
	t.Parallel()

	replier := &fakeReplier{}
	h, _ := setupTestHandler(t, "en", replier)

	body := batch()
	assert.Equal(t, http.StatusOK, post(t, h, body, sign(body)).Code)
	drain(t, h)
	assert.Empty(t, replier.snapshot())
}

func TestShutdown_ContextCanceled(t *testing.T) {
	t.Parallel()

	h, _ := setupTestHandler(t, "en", &fakeReplier{})
	release := make(chan struct{})
	h.wg.Go(func() { <-release })
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, h.Shutdown(ctx), context.Canceled)
}
