package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Nitish-kumar777/streaming/internal/ingest"
	"github.com/Nitish-kumar777/streaming/internal/platform/api"
	"github.com/Nitish-kumar777/streaming/internal/platform/events"
	"github.com/Nitish-kumar777/streaming/internal/platform/httpserver"
)

type previewRequest struct {
	Title       string   `json:"title"`
	EpisodeURLs []string `json:"episode_urls"`
}

type confirmResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Episodes int    `json:"episodes"`
}

// PreviewUpload handles POST /v1/uploads/preview. It validates the
// entered rows, looks the title up and returns an editable draft.
func PreviewUpload(svc *ingest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req previewRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		draft, err := svc.Preview(r.Context(), req.Title, req.EpisodeURLs)
		switch {
		case errors.Is(err, ingest.ErrMissingTitle):
			api.BadRequest(w, "MISSING_TITLE", "anime title is required", rid, nil)
		case errors.Is(err, ingest.ErrMissingEpisodes):
			api.BadRequest(w, "MISSING_EPISODES", "at least one episode URL is required", rid, nil)
		case errors.Is(err, ingest.ErrLookupNotFound):
			api.NotFound(w, "LOOKUP_NOT_FOUND", "anime not found in the metadata catalog", rid)
		case err != nil:
			api.Internal(w, rid)
		default:
			api.WriteJSON(w, http.StatusOK, draft)
		}
	}
}

// ConfirmUpload handles POST /v1/uploads/{draft_id}/confirm. On success
// the record is persisted and the snapshot cache is invalidated; on a
// store failure the draft survives so the client can retry unchanged.
func ConfirmUpload(svc *ingest.Service, cache Cache, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		draftID := strings.TrimSpace(chi.URLParam(r, "draft_id"))
		if draftID == "" {
			api.BadRequest(w, "MISSING_ID", "draft_id is required", rid, nil)
			return
		}

		var edits ingest.Edits
		if !decodeJSON(w, r, rid, &edits) {
			return
		}

		id, rec, err := svc.Confirm(r.Context(), draftID, edits)
		switch {
		case errors.Is(err, ingest.ErrDraftNotFound):
			api.NotFound(w, "DRAFT_NOT_FOUND", "draft not found or expired", rid)
			return
		case errors.Is(err, ingest.ErrMissingEpisodes):
			api.BadRequest(w, "MISSING_EPISODES", "at least one episode URL is required", rid, nil)
			return
		case err != nil:
			api.BadGateway(w, "STORE_UNAVAILABLE", "upload failed, draft kept for retry", rid)
			return
		}

		cache.Delete(snapshotCacheKey)
		pub.Invalidate(snapshotCacheKey)
		pub.Publish(events.SubjectUploadConfirmed, "upload_confirmed", map[string]any{
			"anime_id": id,
			"episodes": len(rec.Episodes),
		})

		api.WriteJSON(w, http.StatusCreated, confirmResponse{
			ID:       id,
			Title:    rec.Title,
			Episodes: len(rec.Episodes),
		})
	}
}
