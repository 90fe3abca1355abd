package catalog

import (
	"encoding/json"
	"testing"
)

func TestRecord_UnmarshalFlatLayout(t *testing.T) {
	raw := []byte(`{"title":"X","duration":"24m","cover":"c.jpg","genres":["Action"],"3":"u3.mp4","1":"u1.mp4"}`)

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Title != "X" || rec.Duration != "24m" || rec.Cover != "c.jpg" {
		t.Fatalf("unexpected scalars: %+v", rec)
	}
	if len(rec.Genres) != 1 || rec.Genres[0] != "Action" {
		t.Fatalf("unexpected genres: %v", rec.Genres)
	}
	if len(rec.Episodes) != 2 || rec.Episodes[1] != "u1.mp4" || rec.Episodes[3] != "u3.mp4" {
		t.Fatalf("unexpected episodes: %v", rec.Episodes)
	}
}

func TestRecord_SourcesOrderedNumericOnly(t *testing.T) {
	rec := Record{
		Title:    "X",
		Duration: "24m",
		Cover:    "c.jpg",
		Genres:   []string{"Action"},
		Episodes: map[int]string{3: "u3.mp4", 1: "u1.mp4"},
	}

	src := rec.Sources()
	if len(src) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(src))
	}
	if src[0].Label != "Episode 1" || src[0].URL != "u1.mp4" {
		t.Fatalf("unexpected first source: %+v", src[0])
	}
	if src[1].Label != "Episode 3" || src[1].URL != "u3.mp4" {
		t.Fatalf("unexpected second source: %+v", src[1])
	}
}

func TestRecord_MarshalFlatLayout(t *testing.T) {
	rec := Record{
		Title:    "Test Show",
		Duration: "24m",
		Cover:    "c.jpg",
		Genres:   []string{"Drama"},
		Episodes: map[int]string{1: "a.mp4", 2: "b.mp4"},
	}

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Episode keys must be siblings of the scalar fields, not nested.
	var flat map[string]any
	if err := json.Unmarshal(b, &flat); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if flat["1"] != "a.mp4" || flat["2"] != "b.mp4" {
		t.Fatalf("expected flat episode keys, got %v", flat)
	}
	if _, nested := flat["episodes"]; nested {
		t.Fatal("episodes must not be nested on the wire")
	}

	var back Record
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.Episodes[2] != "b.mp4" || back.Title != "Test Show" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestRecord_MarshalRejectsNonPositiveEpisode(t *testing.T) {
	rec := Record{Title: "X", Episodes: map[int]string{0: "zero.mp4"}}
	if _, err := json.Marshal(rec); err == nil {
		t.Fatal("expected marshal error for episode 0")
	}
}

func TestRecord_UnmarshalIgnoresUnknownAndNonPositiveKeys(t *testing.T) {
	raw := []byte(`{"title":"X","type":"TV","0":"zero.mp4","-1":"neg.mp4","2":"u2.mp4"}`)

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rec.Episodes) != 1 || rec.Episodes[2] != "u2.mp4" {
		t.Fatalf("expected only episode 2, got %v", rec.Episodes)
	}
}
