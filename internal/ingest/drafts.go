package ingest

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nitish-kumar777/streaming/internal/jikan"
)

// DraftEpisode is one numbered episode URL inside a draft.
type DraftEpisode struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Draft is the transient state between preview and confirmation. It merges
// the looked-up metadata with the user-entered episode URLs; every field
// remains user-editable until confirm. A draft that is neither confirmed
// nor touched before its TTL simply expires, which is how navigating away
// abandons an upload.
type Draft struct {
	ID        string                `json:"draft_id"`
	Summary   jikan.MetadataSummary `json:"summary"`
	Title     string                `json:"title"`
	Duration  string                `json:"duration"`
	Episodes  []DraftEpisode        `json:"episodes"`
	CreatedAt time.Time             `json:"created_at"`
}

// draftStore keeps live drafts in memory, keyed by draft id, with lazy
// TTL expiry. Drafts are single-session state; they are never persisted.
type draftStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[string]Draft
}

func newDraftStore(ttl time.Duration) *draftStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &draftStore{ttl: ttl, drafts: make(map[string]Draft)}
}

func (ds *draftStore) put(d Draft) Draft {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()
	ds.sweepLocked()
	ds.drafts[d.ID] = d
	return d
}

func (ds *draftStore) get(id string) (Draft, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d, ok := ds.drafts[id]
	if !ok {
		return Draft{}, false
	}
	if time.Since(d.CreatedAt) > ds.ttl {
		delete(ds.drafts, id)
		return Draft{}, false
	}
	return d, true
}

func (ds *draftStore) delete(id string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.drafts, id)
}

func (ds *draftStore) sweepLocked() {
	for id, d := range ds.drafts {
		if time.Since(d.CreatedAt) > ds.ttl {
			delete(ds.drafts, id)
		}
	}
}
