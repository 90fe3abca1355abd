package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Nitish-kumar777/streaming/internal/catalog"
	"github.com/Nitish-kumar777/streaming/internal/platform/events"
	"github.com/Nitish-kumar777/streaming/internal/jikan"
	"github.com/Nitish-kumar777/streaming/internal/platform/api"
	"github.com/Nitish-kumar777/streaming/internal/platform/httpserver"
	"github.com/Nitish-kumar777/streaming/internal/playback"
)

type watchResponse struct {
	ID      string                  `json:"id"`
	Title   string                  `json:"title"`
	Detail  *jikan.Detail           `json:"detail,omitempty"`
	Sources []catalog.EpisodeSource `json:"sources"`
	Related []catalogItem           `json:"related"`
}

// Watch handles GET /v1/watch/{anime_id}.
func Watch(res *playback.Resolver, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id := strings.TrimSpace(chi.URLParam(r, "anime_id"))
		if id == "" {
			api.BadRequest(w, "MISSING_ID", "anime_id is required", rid, nil)
			return
		}

		resolved, err := res.Resolve(r.Context(), id)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			api.NotFound(w, "NOT_FOUND", "anime not found", rid)
			return
		case err != nil:
			api.BadGateway(w, "STORE_UNAVAILABLE", "catalog store unavailable", rid)
			return
		}

		pub.Publish(events.SubjectWatchResolved, "watch_resolved", map[string]any{
			"anime_id": id,
			"sources":  len(resolved.Sources),
		})

		api.WriteJSON(w, http.StatusOK, watchResponse{
			ID:      resolved.ID,
			Title:   resolved.Title,
			Detail:  resolved.Detail,
			Sources: resolved.Sources,
			Related: toCatalogItems(resolved.Related),
		})
	}
}
