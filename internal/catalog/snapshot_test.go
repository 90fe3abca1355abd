package catalog

import (
	"fmt"
	"strconv"
	"testing"
)

func snapshotOf(n int) Snapshot {
	entries := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, Entry{
			ID:     strconv.Itoa(i),
			Record: Record{Title: fmt.Sprintf("Show %d", i), Episodes: map[int]string{1: "u.mp4"}},
		})
	}
	return NewSnapshot(entries)
}

func TestSnapshot_PagesPartitionTheSet(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 9, 16, 17} {
		s := snapshotOf(n)
		wantPages := (n + PageSize - 1) / PageSize
		if got := s.TotalPages(); got != wantPages {
			t.Fatalf("n=%d: expected %d pages, got %d", n, wantPages, got)
		}

		seen := map[string]bool{}
		for p := 1; p <= s.TotalPages(); p++ {
			page := s.Page(p)
			if p < s.TotalPages() && len(page) != PageSize {
				t.Fatalf("n=%d page=%d: expected full page, got %d", n, p, len(page))
			}
			for _, e := range page {
				if seen[e.ID] {
					t.Fatalf("n=%d: id %s appears on two pages", n, e.ID)
				}
				seen[e.ID] = true
			}
		}
		if len(seen) != n {
			t.Fatalf("n=%d: pages cover %d items", n, len(seen))
		}

		if n > 0 {
			last := s.Page(s.TotalPages())
			wantLast := n % PageSize
			if wantLast == 0 {
				wantLast = PageSize
			}
			if len(last) != wantLast {
				t.Fatalf("n=%d: expected last page of %d, got %d", n, wantLast, len(last))
			}
		}
	}
}

func TestSnapshot_PageOutOfRangeIsEmpty(t *testing.T) {
	s := snapshotOf(10)
	if got := s.Page(0); len(got) != 0 {
		t.Fatalf("page 0 should be empty, got %d", len(got))
	}
	if got := s.Page(99); len(got) != 0 {
		t.Fatalf("page 99 should be empty, got %d", len(got))
	}
}

func TestSnapshot_SearchCaseInsensitiveSubstring(t *testing.T) {
	s := NewSnapshot([]Entry{
		{ID: "1", Record: Record{Title: "Cowboy Bebop"}},
		{ID: "2", Record: Record{Title: "Samurai Champloo"}},
		{ID: "3", Record: Record{Title: "BECK"}},
	})

	got := s.Search("bE")
	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	// Snapshot order preserved
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected hit order: %v", got)
	}

	if len(s.Search("zzz")) != 0 {
		t.Fatal("expected no hits")
	}
}

func TestSnapshot_SearchHasNoResultCap(t *testing.T) {
	s := snapshotOf(40)
	if got := s.Search("show"); len(got) != 40 {
		t.Fatalf("expected all 40 hits, got %d", len(got))
	}
}

func TestSnapshot_SampleSize(t *testing.T) {
	if got := snapshotOf(20).Sample(SampleSize); len(got) != SampleSize {
		t.Fatalf("expected %d samples, got %d", SampleSize, len(got))
	}
	if got := snapshotOf(4).Sample(SampleSize); len(got) != 4 {
		t.Fatalf("expected min(9,4)=4 samples, got %d", len(got))
	}
	if got := snapshotOf(0).Sample(SampleSize); len(got) != 0 {
		t.Fatalf("expected empty sample, got %d", len(got))
	}
}

func TestSnapshot_SampleDoesNotMutateOrder(t *testing.T) {
	s := snapshotOf(30)
	_ = s.Sample(SampleSize)
	page := s.Page(1)
	for i, e := range page {
		if e.ID != strconv.Itoa(i+1) {
			t.Fatalf("snapshot order disturbed by sampling: %v", page)
		}
	}
}

func TestSnapshot_RelatedExcludesCurrentAndCaps(t *testing.T) {
	s := snapshotOf(12)
	got := s.Related("3", RelatedLimit)
	if len(got) != RelatedLimit {
		t.Fatalf("expected %d related, got %d", RelatedLimit, len(got))
	}
	want := []string{"1", "2", "4", "5", "6", "7", "8", "9"}
	for i, e := range got {
		if e.ID != want[i] {
			t.Fatalf("expected order %v, got %s at %d", want, e.ID, i)
		}
	}
}

func TestSnapshot_RelatedSmallSet(t *testing.T) {
	s := snapshotOf(3)
	got := s.Related("2", RelatedLimit)
	if len(got) != 2 {
		t.Fatalf("expected 2 related, got %d", len(got))
	}
}
