package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
)

// R2Scheme prefixes sources stored in object storage.
const R2Scheme = "r2://"

// ErrNoObjectStore is returned for an r2:// source when no object store is
// configured.
var ErrNoObjectStore = errors.New("dataset: r2 source requires object storage")

// ObjectStore downloads objects by key.
type ObjectStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// Loader opens dataset sources and seeds them into the database.
type Loader struct {
	objects ObjectStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewLoader creates a Loader. objects may be nil when only local files are
// used.
func NewLoader(objects ObjectStore, m *metrics.Metrics, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{objects: objects, metrics: m, logger: logger}
}

// Open returns a reader for a filesystem path or an r2://key source. A .zst
// suffix is decompressed on the fly.
func (l *Loader) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if key, ok := strings.CutPrefix(source, R2Scheme); ok {
		if l.objects == nil {
			return nil, ErrNoObjectStore
		}
		if key == "" {
			return nil, errors.New("dataset: empty r2 key")
		}
		rc, err = l.objects.Download(ctx, key)
	} else {
		rc, err = os.Open(source)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", source, err)
	}

	if !strings.HasSuffix(source, ".zst") {
		return rc, nil
	}

	dec, err := zstd.NewReader(rc)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("dataset: create zstd decoder: %w", err)
	}
	return &zstdReadCloser{dec: dec, src: rc}, nil
}

// Seed parses source and upserts every record in one transaction. It
// returns the number of records written.
func (l *Loader) Seed(ctx context.Context, db *storage.DB, source string) (int, error) {
	start := time.Now()

	rc, err := l.Open(ctx, source)
	if err != nil {
		return 0, err
	}
	defer rc.Close() //nolint:errcheck

	recs, err := Parse(rc)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			l.metrics.RecordDatasetRows("invalid", len(pe.Rows))
		}
		return 0, err
	}

	n, err := db.UpsertRecords(ctx, recs)
	if err != nil {
		return 0, domerrors.NewWrapper("dataset", "upsert").Wrap(err, "failed to store dataset records")
	}
	l.metrics.RecordDatasetRows("loaded", n)

	l.logger.InfoContext(ctx, "Dataset seeded",
		"source", source,
		"records", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n, nil
}

type zstdReadCloser struct {
	dec *zstd.Decoder
	src io.Closer
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.src.Close()
}
