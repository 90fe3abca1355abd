// Package ingest drives the upload workflow: collect episode URL rows,
// look up metadata, assemble an editable draft, and persist the confirmed
// record to the catalog store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nitish-kumar777/streaming/internal/catalog"
	"github.com/Nitish-kumar777/streaming/internal/jikan"
)

// Validation and lookup failures the handler maps to client errors.
// Anything else returned by the service is a store failure.
var (
	ErrMissingTitle    = errors.New("ingest: missing title")
	ErrMissingEpisodes = errors.New("ingest: missing episodes")
	ErrLookupNotFound  = errors.New("ingest: metadata not found")
	ErrDraftNotFound   = errors.New("ingest: draft not found or expired")
)

// Edits carries the user-edited fields sent at confirm time. Blank Title
// or Duration fall back to the draft's values. EpisodeURLs replace the
// draft's episode list wholesale; numbering is re-derived by position.
type Edits struct {
	Title       string   `json:"title"`
	Duration    string   `json:"duration"`
	EpisodeURLs []string `json:"episode_urls"`
}

type Service struct {
	jikan  jikan.Provider
	store  catalog.Store
	drafts *draftStore
	log    *zap.Logger
}

func NewService(p jikan.Provider, st catalog.Store, draftTTL time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{jikan: p, store: st, drafts: newDraftStore(draftTTL), log: log}
}

// Preview validates the entered title and episode rows, looks the title up
// and returns an editable draft. Both presence checks run before the
// lookup, so invalid input never reaches the metadata API. Blank rows are
// dropped and the remaining URLs are renumbered 1-based in entry order.
func (s *Service) Preview(ctx context.Context, title string, rows []string) (Draft, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Draft{}, ErrMissingTitle
	}

	episodes := compactRows(rows)
	if len(episodes) == 0 {
		return Draft{}, ErrMissingEpisodes
	}

	summary, err := s.jikan.Lookup(ctx, title)
	if err != nil {
		// The client only ever reports not-found.
		return Draft{}, ErrLookupNotFound
	}

	d := s.drafts.put(Draft{
		Summary:  summary,
		Title:    summary.Title,
		Duration: summary.Duration,
		Episodes: episodes,
	})
	s.log.Info("upload draft created",
		zap.String("draft_id", d.ID),
		zap.String("anime_id", summary.ID),
		zap.Int("episodes", len(episodes)))
	return d, nil
}

// Confirm persists the draft, applying any edits. Episode numbering is
// positional over the submitted list, not the draft's original numbers.
// On a store failure the draft is kept so the exact same confirmation can
// be retried; on success it is destroyed.
func (s *Service) Confirm(ctx context.Context, draftID string, e Edits) (string, catalog.Record, error) {
	d, ok := s.drafts.get(strings.TrimSpace(draftID))
	if !ok {
		return "", catalog.Record{}, ErrDraftNotFound
	}

	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = d.Title
	}
	duration := strings.TrimSpace(e.Duration)
	if duration == "" {
		duration = d.Duration
	}

	urls := e.EpisodeURLs
	if urls == nil {
		for _, ep := range d.Episodes {
			urls = append(urls, ep.URL)
		}
	}
	episodes := make(map[int]string)
	n := 0
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			n++
			episodes[n] = u
		}
	}
	if len(episodes) == 0 {
		return "", catalog.Record{}, ErrMissingEpisodes
	}

	rec := catalog.Record{
		Title:    title,
		Duration: duration,
		Cover:    d.Summary.Cover,
		Genres:   d.Summary.Genres,
		Episodes: episodes,
	}
	if err := s.store.Put(ctx, d.Summary.ID, rec); err != nil {
		s.log.Warn("upload persist failed", zap.String("draft_id", d.ID), zap.Error(err))
		return "", catalog.Record{}, fmt.Errorf("ingest: persist record: %w", err)
	}

	s.drafts.delete(d.ID)
	s.log.Info("upload confirmed",
		zap.String("anime_id", d.Summary.ID),
		zap.String("title", title),
		zap.Int("episodes", len(episodes)))
	return d.Summary.ID, rec, nil
}

func compactRows(rows []string) []DraftEpisode {
	out := make([]DraftEpisode, 0, len(rows))
	for _, u := range rows {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, DraftEpisode{Number: len(out) + 1, URL: u})
		}
	}
	return out
}
