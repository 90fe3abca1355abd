package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeRTDB emulates the Realtime Database REST surface the store uses:
// GET /animes.json, GET /animes/{id}.json, PUT /animes/{id}.json.
type fakeRTDB struct {
	mu      sync.Mutex
	records map[string]json.RawMessage
}

func newFakeRTDB() *fakeRTDB {
	return &fakeRTDB{records: make(map[string]json.RawMessage)}
}

func (f *fakeRTDB) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.URL.Path == "/animes.json" && r.Method == http.MethodGet:
			if len(f.records) == 0 {
				_, _ = w.Write([]byte("null"))
				return
			}
			_ = json.NewEncoder(w).Encode(f.records)

		case r.Method == http.MethodGet:
			id := idFromPath(r.URL.Path)
			raw, ok := f.records[id]
			if !ok {
				_, _ = w.Write([]byte("null"))
				return
			}
			_, _ = w.Write(raw)

		case r.Method == http.MethodPut:
			id := idFromPath(r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			f.records[id] = body
			_, _ = w.Write(body)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func idFromPath(p string) string {
	// /animes/{id}.json
	const prefix, suffix = "/animes/", ".json"
	return p[len(prefix) : len(p)-len(suffix)]
}

func TestFirebaseStore_PutGetRoundTrip(t *testing.T) {
	srv := httptest.NewServer(newFakeRTDB().handler())
	defer srv.Close()

	s := NewFirebaseStore(srv.URL, "")
	ctx := context.Background()

	rec := testRecord("Test Show", map[int]string{1: "a.mp4", 2: "b.mp4"})
	if err := s.Put(ctx, "200", rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetOne(ctx, "200")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	src := got.Sources()
	if len(src) != 2 || src[0].URL != "a.mp4" || src[1].URL != "b.mp4" {
		t.Fatalf("unexpected sources after round trip: %+v", src)
	}
}

func TestFirebaseStore_WireLayoutIsFlat(t *testing.T) {
	fake := newFakeRTDB()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s := NewFirebaseStore(srv.URL, "")
	if err := s.Put(context.Background(), "7", testRecord("X", map[int]string{4: "u4.mp4"})); err != nil {
		t.Fatalf("put: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(fake.records["7"], &flat); err != nil {
		t.Fatalf("stored body not json: %v", err)
	}
	if flat["4"] != "u4.mp4" {
		t.Fatalf("expected episode key '4' at top level, got %v", flat)
	}
	if _, nested := flat["episodes"]; nested {
		t.Fatal("wire layout must stay flat for compatibility with existing data")
	}
}

func TestFirebaseStore_GetOneAbsentIsNotFound(t *testing.T) {
	srv := httptest.NewServer(newFakeRTDB().handler())
	defer srv.Close()

	_, err := NewFirebaseStore(srv.URL, "").GetOne(context.Background(), "missing")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirebaseStore_GetAllEmptyDatabase(t *testing.T) {
	srv := httptest.NewServer(newFakeRTDB().handler())
	defer srv.Close()

	entries, err := NewFirebaseStore(srv.URL, "").GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestFirebaseStore_GetAllSortsKeys(t *testing.T) {
	fake := newFakeRTDB()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s := NewFirebaseStore(srv.URL, "")
	ctx := context.Background()
	for _, id := range []string{"21", "5", "300"} {
		if err := s.Put(ctx, id, testRecord("t"+id, map[int]string{1: "u.mp4"})); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	entries, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	want := []string{"5", "21", "300"}
	for i := range want {
		if entries[i].ID != want[i] {
			t.Fatalf("expected order %v, got %s at %d", want, entries[i].ID, i)
		}
	}
}

func TestFirebaseStore_AuthTokenForwarded(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.URL.Query().Get("auth")
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	_, _ = NewFirebaseStore(srv.URL, "secret-token").GetAll(context.Background())
	if gotAuth != "secret-token" {
		t.Fatalf("expected auth query param, got %q", gotAuth)
	}
}

func TestFirebaseStore_ServerErrorIsGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewFirebaseStore(srv.URL, "")
	if _, err := s.GetAll(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
	if err := s.Put(context.Background(), "1", testRecord("X", map[int]string{1: "u.mp4"})); err == nil {
		t.Fatal("expected error on 500")
	}
}
