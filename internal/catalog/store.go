package catalog

import (
	"context"
	"errors"
	"sort"
	"strconv"
)

var (
	// ErrNotFound reports a missing record id.
	ErrNotFound = errors.New("catalog: record not found")
	// ErrNoEpisodes rejects persisting a record with an empty episode map.
	ErrNoEpisodes = errors.New("catalog: record has no episodes")
)

// Store is the gateway to the keyed record store. Put is a full overwrite
// of the record at that key; callers must supply a complete record.
// Enumeration order from GetAll is the store order documented on each
// implementation; callers re-order explicitly wherever order matters.
type Store interface {
	GetAll(ctx context.Context) ([]Entry, error)
	GetOne(ctx context.Context, id string) (Record, error)
	Put(ctx context.Context, id string, rec Record) error
}

// sortEntries orders entries the way the hosted store enumerates keys:
// integer-like ids ascending numerically, then the rest lexically.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, aerr := strconv.Atoi(entries[i].ID)
		b, berr := strconv.Atoi(entries[j].ID)
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return entries[i].ID < entries[j].ID
		}
	})
}
