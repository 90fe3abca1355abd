package handlers

import (
	"context"
	"net/http"

	"github.com/Nitish-kumar777/streaming/internal/catalog"
	"github.com/Nitish-kumar777/streaming/internal/platform/api"
	"github.com/Nitish-kumar777/streaming/internal/platform/events"
	"github.com/Nitish-kumar777/streaming/internal/platform/httpserver"
)

const snapshotCacheKey = "catalog:snapshot"

type catalogItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Cover    string   `json:"cover,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Episodes int      `json:"episodes"`
}

type listResponse struct {
	Items      []catalogItem `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
}

type searchResponse struct {
	Items []catalogItem `json:"items"`
	Query string        `json:"query"`
	Total int           `json:"total"`
}

func toCatalogItem(e catalog.Entry) catalogItem {
	return catalogItem{
		ID:       e.ID,
		Title:    e.Record.Title,
		Cover:    e.Record.Cover,
		Duration: e.Record.Duration,
		Genres:   e.Record.Genres,
		Episodes: len(e.Record.Episodes),
	}
}

func toCatalogItems(entries []catalog.Entry) []catalogItem {
	items := make([]catalogItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, toCatalogItem(e))
	}
	return items
}

// loadSnapshot fetches the full record set once per TTL window and serves
// every read pattern from that point-in-time copy.
func loadSnapshot(ctx context.Context, store catalog.Store, cache Cache) (catalog.Snapshot, error) {
	if cached, ok := cache.Get(snapshotCacheKey); ok {
		if snap, ok := cached.(catalog.Snapshot); ok {
			return snap, nil
		}
	}
	entries, err := store.GetAll(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	snap := catalog.NewSnapshot(entries)
	cache.Set(snapshotCacheKey, snap)
	return snap, nil
}

// ListCatalog handles GET /v1/catalog?page=N
func ListCatalog(store catalog.Store, cache Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		page := parseIntQuery(r.URL.Query().Get("page"), 1)

		snap, err := loadSnapshot(r.Context(), store, cache)
		if err != nil {
			api.BadGateway(w, "STORE_UNAVAILABLE", "catalog store unavailable", rid)
			return
		}

		if page < 1 || (snap.TotalPages() > 0 && page > snap.TotalPages()) {
			api.BadRequest(w, "INVALID_PAGE", "page out of range", rid,
				map[string]any{"total_pages": snap.TotalPages()})
			return
		}

		api.WriteJSON(w, http.StatusOK, listResponse{
			Items:      toCatalogItems(snap.Page(page)),
			Page:       page,
			TotalPages: snap.TotalPages(),
			Total:      snap.Len(),
		})
	}
}

// SearchCatalog handles GET /v1/search?q=...
// An empty query returns a fresh random sample; a non-empty query returns
// every title containing it case-insensitively, uncapped.
func SearchCatalog(store catalog.Store, cache Cache, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		q := r.URL.Query().Get("q")

		snap, err := loadSnapshot(r.Context(), store, cache)
		if err != nil {
			api.BadGateway(w, "STORE_UNAVAILABLE", "catalog store unavailable", rid)
			return
		}

		var hits []catalog.Entry
		if q == "" {
			hits = snap.Sample(catalog.SampleSize)
		} else {
			hits = snap.Search(q)
			pub.Publish(events.SubjectSearchPerformed, "search_performed", map[string]any{
				"query": q,
				"hits":  len(hits),
			})
		}

		api.WriteJSON(w, http.StatusOK, searchResponse{
			Items: toCatalogItems(hits),
			Query: q,
			Total: len(hits),
		})
	}
}
