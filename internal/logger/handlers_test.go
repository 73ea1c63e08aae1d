package logger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler keeps every message it receives.
type recordingHandler struct {
	mu       sync.Mutex
	level    slog.Level
	messages []string
	attrs    []slog.Attr
	err      error
	delay    time.Duration
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	if h.delay > 0 {
		time.Sleep(h.delay)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, r.Message)
	return h.err
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attrs = append(h.attrs, attrs...)
	return h
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func (h *recordingHandler) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.messages...)
}

func TestMultiHandler_FanOut(t *testing.T) {
	t.Parallel()
	info := &recordingHandler{level: slog.LevelInfo}
	errOnly := &recordingHandler{level: slog.LevelError}
	log := slog.New(NewMultiHandler(info, nil, errOnly))

	log.Info("loaded records")
	log.Error("seed failed")

	assert.Equal(t, []string{"loaded records", "seed failed"}, info.snapshot())
	assert.Equal(t, []string{"seed failed"}, errOnly.snapshot())
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("sink down")
	h := NewMultiHandler(&recordingHandler{err: boom}, &recordingHandler{})

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug-4))
}

func TestMultiHandler_WithAttrsReachesSinks(t *testing.T) {
	t.Parallel()
	sink := &recordingHandler{}
	NewMultiHandler(sink).WithAttrs([]slog.Attr{slog.String("service", "groundwater")})
	require.Len(t, sink.attrs, 1)
	assert.Equal(t, "service", sink.attrs[0].Key)
}

func TestAsyncHandler_DeliversBeforeShutdownReturns(t *testing.T) {
	t.Parallel()
	sink := &recordingHandler{}
	h := NewAsyncHandler(sink, AsyncOptions{QueueSize: 16})
	log := slog.New(h)

	for range 5 {
		log.Info("shipped")
	}
	require.NoError(t, h.Shutdown(context.Background()))
	assert.Len(t, sink.snapshot(), 5)

	// Records after shutdown are ignored and a second shutdown is a no-op.
	log.Info("late")
	assert.NoError(t, h.Shutdown(context.Background()))
	assert.Len(t, sink.snapshot(), 5)
}

func TestAsyncHandler_DropsWhenFull(t *testing.T) {
	t.Parallel()
	sink := &recordingHandler{delay: 50 * time.Millisecond}
	h := NewAsyncHandler(sink, AsyncOptions{QueueSize: 1})
	log := slog.New(h)

	for range 20 {
		log.Info("burst")
	}
	assert.Positive(t, h.Dropped())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.Shutdown(ctx))
}
