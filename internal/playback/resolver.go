// Package playback resolves a catalog record into what the watch page
// needs: the ordered episode source list, the display detail, and the
// related-items rail.
package playback

import (
	"context"

	"go.uber.org/zap"

	"github.com/Nitish-kumar777/streaming/internal/catalog"
	"github.com/Nitish-kumar777/streaming/internal/jikan"
)

// Resolution is everything the watch page renders for one title.
type Resolution struct {
	ID      string                  `json:"id"`
	Record  catalog.Record          `json:"-"`
	Title   string                  `json:"title"`
	Detail  *jikan.Detail           `json:"detail,omitempty"`
	Sources []catalog.EpisodeSource `json:"sources"`
	Related []catalog.Entry         `json:"related"`
}

type Resolver struct {
	store catalog.Store
	jikan jikan.Provider
	log   *zap.Logger
}

func NewResolver(st catalog.Store, p jikan.Provider, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{store: st, jikan: p, log: log}
}

// Resolve loads the record for id, enriches it with external detail and
// assembles the source list and related rail. A missing record is the
// only fatal condition; the detail fetch and the related load degrade to
// absence.
func (r *Resolver) Resolve(ctx context.Context, id string) (Resolution, error) {
	rec, err := r.store.GetOne(ctx, id)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{
		ID:      id,
		Record:  rec,
		Title:   rec.Title,
		Sources: rec.Sources(),
		Related: []catalog.Entry{},
	}

	detail, err := r.jikan.GetFull(ctx, id)
	if err != nil {
		r.log.Warn("detail fetch failed, proceeding with record data only",
			zap.String("anime_id", id), zap.Error(err))
	} else {
		res.Detail = detail
		if detail.Title != "" {
			res.Title = detail.Title
		}
	}

	entries, err := r.store.GetAll(ctx)
	if err != nil {
		r.log.Warn("related load failed", zap.String("anime_id", id), zap.Error(err))
		return res, nil
	}
	res.Related = catalog.NewSnapshot(entries).Related(id, catalog.RelatedLimit)
	return res, nil
}

// NextIndex implements the player's end-of-media advancement: move to the
// next source unless the current one is the last. It never loops.
func NextIndex(current, total int) int {
	if current < total-1 {
		return current + 1
	}
	return current
}
