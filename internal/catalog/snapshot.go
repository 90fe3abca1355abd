package catalog

import (
	"math/rand"
	"strings"
)

// Display sizes used by the listing, search and watch pages.
const (
	PageSize     = 8
	SampleSize   = 9
	RelatedLimit = 8
)

// Snapshot is a full, point-in-time copy of the catalog for one page view.
// It is never mutated after construction; all read patterns slice or
// filter it.
type Snapshot struct {
	entries []Entry
}

func NewSnapshot(entries []Entry) Snapshot {
	return Snapshot{entries: entries}
}

func (s Snapshot) Len() int { return len(s.entries) }

// TotalPages reports ceil(len/PageSize).
func (s Snapshot) TotalPages() int {
	return (len(s.entries) + PageSize - 1) / PageSize
}

// Page returns page n (1-based) in snapshot order. Callers are expected to
// validate n against TotalPages first; out-of-range pages come back empty.
func (s Snapshot) Page(n int) []Entry {
	start := (n - 1) * PageSize
	if n < 1 || start >= len(s.entries) {
		return []Entry{}
	}
	end := start + PageSize
	if end > len(s.entries) {
		end = len(s.entries)
	}
	return s.entries[start:end]
}

// Search returns every entry whose title contains q case-insensitively,
// in snapshot order, with no result cap. An empty q matches everything;
// callers wanting the empty-query sample behavior use Sample instead.
func (s Snapshot) Search(q string) []Entry {
	q = strings.ToLower(q)
	out := make([]Entry, 0)
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Record.Title), q) {
			out = append(out, e)
		}
	}
	return out
}

// Sample returns up to k entries drawn uniformly at random. The selection
// is re-randomized on every call; it is deliberately not stable.
func (s Snapshot) Sample(k int) []Entry {
	shuffled := append([]Entry(nil), s.entries...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if k > len(shuffled) {
		k = len(shuffled)
	}
	if k < 0 {
		k = 0
	}
	return shuffled[:k]
}

// Related returns the first limit entries excluding the given id, in
// snapshot order. Unlike Sample it is not randomized.
func (s Snapshot) Related(excludeID string, limit int) []Entry {
	out := make([]Entry, 0, limit)
	for _, e := range s.entries {
		if e.ID == excludeID {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}
