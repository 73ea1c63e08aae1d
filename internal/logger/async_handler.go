package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultQueueSize    = 1024
	defaultDrainTimeout = 5 * time.Second
)

// AsyncOptions sizes the shipping queue.
type AsyncOptions struct {
	QueueSize    int
	DrainTimeout time.Duration
}

type queuedRecord struct {
	ctx     context.Context
	record  slog.Record
	handler slog.Handler
}

// shipQueue is shared by an AsyncHandler and all handlers derived from it.
type shipQueue struct {
	records      chan queuedRecord
	drainTimeout time.Duration
	mu           sync.RWMutex // guards closed against sends on a closed channel
	closed       bool
	dropped      atomic.Uint64
	done         sync.WaitGroup
}

func newShipQueue(opts AsyncOptions) *shipQueue {
	size := opts.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	drain := opts.DrainTimeout
	if drain <= 0 {
		drain = defaultDrainTimeout
	}
	q := &shipQueue{
		records:      make(chan queuedRecord, size),
		drainTimeout: drain,
	}
	q.done.Go(func() {
		for rec := range q.records {
			_ = rec.handler.Handle(rec.ctx, rec.record)
		}
	})
	return q
}

// AsyncHandler hands records to a background goroutine so a slow remote sink
// never blocks request handling. Records are dropped when the queue is full.
type AsyncHandler struct {
	queue *shipQueue
	next  slog.Handler
}

// NewAsyncHandler starts the shipping goroutine for next.
func NewAsyncHandler(next slog.Handler, opts AsyncOptions) *AsyncHandler {
	return &AsyncHandler{queue: newShipQueue(opts), next: next}
}

// Enabled delegates to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle enqueues a clone of r without blocking.
func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	h.queue.mu.RLock()
	defer h.queue.mu.RUnlock()
	if h.queue.closed {
		return nil
	}
	select {
	case h.queue.records <- queuedRecord{ctx: context.WithoutCancel(ctx), record: r.Clone(), handler: h.next}:
	default:
		h.queue.dropped.Add(1)
	}
	return nil
}

// WithAttrs shares the queue with the receiver.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{queue: h.queue, next: h.next.WithAttrs(attrs)}
}

// WithGroup shares the queue with the receiver.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{queue: h.queue, next: h.next.WithGroup(name)}
}

// Dropped returns how many records were discarded on a full queue.
func (h *AsyncHandler) Dropped() uint64 {
	return h.queue.dropped.Load()
}

// Shutdown stops accepting records and waits for the queue to drain, bounded
// by ctx or the configured drain timeout when ctx has no deadline.
func (h *AsyncHandler) Shutdown(ctx context.Context) error {
	if h == nil {
		return nil
	}
	h.queue.mu.Lock()
	if h.queue.closed {
		h.queue.mu.Unlock()
		return nil
	}
	h.queue.closed = true
	close(h.queue.records)
	h.queue.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.queue.drainTimeout)
		defer cancel()
	}

	drained := make(chan struct{})
	go func() {
		h.queue.done.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
