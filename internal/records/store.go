// Package records holds the in-memory, read-only view of groundwater records
// served to queries.
package records

import (
	"context"
	"fmt"
	"strings"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
)

// Lister is the storage method the store is built from.
type Lister interface {
	ListRecords(ctx context.Context) ([]storage.Record, error)
}

// Store maps case-folded location keys to records. It is never mutated after
// construction, so concurrent Lookups need no locking.
type Store struct {
	byKey map[string]storage.Record
}

// New builds a Store. When two records fold to the same key the later one wins.
func New(recs []storage.Record) *Store {
	s := &Store{byKey: make(map[string]storage.Record, len(recs))}
	for _, r := range recs {
		s.byKey[foldKey(r.Location)] = r
	}
	return s
}

// Load reads every record from l.
func Load(ctx context.Context, l Lister) (*Store, error) {
	recs, err := l.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return New(recs), nil
}

// Lookup returns the record whose location equals location case-insensitively.
func (s *Store) Lookup(location string) (storage.Record, error) {
	if r, ok := s.byKey[foldKey(location)]; ok {
		return r, nil
	}
	return storage.Record{}, fmt.Errorf("location %q: %w", location, domerrors.ErrNotFound)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.byKey)
}

// foldKey lowercases ASCII letters only, matching SQLite's NOCASE collation
// on the location column. Other letters keep their case.
func foldKey(location string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, location)
}
