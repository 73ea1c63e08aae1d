// Package alias maps free-text mentions of a place to the canonical location
// key used by the record store.
package alias

import "github.com/garyellow/groundwater-bot-go/internal/stringutil"

// Entry maps a lowercase alias to a canonical location key.
type Entry struct {
	Alias    string
	Location string
}

// DefaultTable is the built-in alias table, in match order. The near-duplicate
// viluppuram and villupuram spellings point at different keys.
var DefaultTable = []Entry{
	{"salem", "Salem"},
	{"salem (extended)", "Salem (Extended)"},
	{"puducherry", "Puducherry"},
	{"kumbakonam", "Kumbakonam Town"},
	{"kumbakonam town", "Kumbakonam Town"},
	{"kanchipuram", "Kanchipuram"},
	{"kanchipuram town", "Kanchipuram Town"},
	{"karaikal", "Karaikal"},
	{"karaikal town", "Karaikal Town"},
	{"viluppuram", "Viluppuram"},
	{"villupuram", "Villupuram"},
}

// Resolver finds the first alias contained in a text. It is immutable and
// safe for concurrent use.
type Resolver struct {
	entries []Entry
	aliases []string
}

// NewResolver copies entries; later changes to the slice have no effect.
func NewResolver(entries []Entry) *Resolver {
	r := &Resolver{
		entries: make([]Entry, len(entries)),
		aliases: make([]string, len(entries)),
	}
	copy(r.entries, entries)
	for i, e := range entries {
		r.aliases[i] = e.Alias
	}
	return r
}

// NewDefaultResolver returns a Resolver over DefaultTable.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultTable)
}

// Resolve scans the table in order and returns the location of the first
// alias that text contains. text is expected to be normalized already.
// Because "salem" precedes "salem (extended)", the extended key is only
// reachable through a table that lists it first.
func (r *Resolver) Resolve(text string) (string, bool) {
	matched, ok := stringutil.FirstContained(text, r.aliases...)
	if !ok {
		return "", false
	}
	for _, e := range r.entries {
		if e.Alias == matched {
			return e.Location, true
		}
	}
	return "", false
}

// Entries returns a copy of the table.
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
