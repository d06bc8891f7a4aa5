package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
	"github.com/linkboard/go-linkboard-backend/internal/search"
)

func str(s string) *string { return &s }

func TestInsertEntry_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	e := &domain.Entry{
		ID:        "e1",
		URL:       "https://example.com/a",
		Note:      str("a note"),
		Context:   "tech talk",
		Hostname:  "example.com",
		Tags:      domain.TagList{"go", "talks"},
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := InsertEntry(context.Background(), db, e); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	var got domain.Entry
	if err := db.First(&got, "id = ?", "e1").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.URL != e.URL || got.Hostname != "example.com" || got.Context != "tech talk" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Note == nil || *got.Note != "a note" {
		t.Fatalf("note lost: %+v", got.Note)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "talks" {
		t.Fatalf("tags mismatch: %#v", got.Tags)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("created_at did not survive the durable round trip: got %v want %v", got.CreatedAt, e.CreatedAt)
	}
	if got.SyncedToNotion {
		t.Fatalf("core must never set synced_to_notion")
	}
}

func TestInsertEntry_AbsentNoteStaysAbsent(t *testing.T) {
	db := newTestDB(t)

	e := &domain.Entry{ID: "e1", URL: "https://a.com", Context: "c", Hostname: "a.com", CreatedAt: time.Now().UTC()}
	if err := InsertEntry(context.Background(), db, e); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	var got domain.Entry
	if err := db.First(&got, "id = ?", "e1").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Note != nil {
		t.Fatalf("expected nil note, got %q", *got.Note)
	}
}

func TestListEntries_RecencyOrderAndLimit(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := &domain.Entry{
			ID:        fmt.Sprintf("e%d", i),
			URL:       fmt.Sprintf("https://example.com/%d", i),
			Context:   "c",
			Hostname:  "example.com",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := InsertEntry(context.Background(), db, e); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	got, err := ListEntries(context.Background(), db, "", 3)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(got) != 3 || got[0].ID != "e4" || got[1].ID != "e3" || got[2].ID != "e2" {
		t.Fatalf("unexpected order/limit: %#v", got)
	}
}

func TestListEntries_CaseInsensitiveSubstring(t *testing.T) {
	db := newTestDB(t)

	entries := []domain.Entry{
		{ID: "a", URL: "https://Example.com/a", Context: "c", Hostname: "example.com", CreatedAt: time.Now().UTC()},
		{ID: "b", URL: "https://other.net/b", Context: "golang meetup", Hostname: "other.net", CreatedAt: time.Now().UTC()},
		{ID: "c", URL: "https://third.org/c", Context: "c", Hostname: "third.org", Tags: domain.TagList{"observability"}, CreatedAt: time.Now().UTC()},
	}
	for i := range entries {
		if err := InsertEntry(context.Background(), db, &entries[i]); err != nil {
			t.Fatalf("seed %s: %v", entries[i].ID, err)
		}
	}

	tests := []struct {
		term string
		want []string
	}{
		{"example", []string{"a"}},
		{"EXAMPLE", []string{"a"}},
		{"golang", []string{"b"}},
		{"observ", []string{"c"}},
		{"nomatch", nil},
	}
	for _, tc := range tests {
		got, err := ListEntries(context.Background(), db, search.NormalizeTerm(tc.term), ListLimit)
		if err != nil {
			t.Fatalf("ListEntries(%q): %v", tc.term, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("ListEntries(%q): got %d entries, want %d", tc.term, len(got), len(tc.want))
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("ListEntries(%q)[%d] = %s, want %s", tc.term, i, got[i].ID, id)
			}
		}
	}
}

func TestListEntries_MalformedTagsDecodeEmpty(t *testing.T) {
	db := newTestDB(t)

	// Bypass the model to plant malformed serialized tags.
	if err := db.Exec(
		`INSERT INTO entries (id, url, context, hostname, tags, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"bad", "https://a.com", "c", "a.com", "{not json", time.Now().UTC(),
	).Error; err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	got, err := ListEntries(context.Background(), db, "", ListLimit)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(got) != 1 || len(got[0].Tags) != 0 {
		t.Fatalf("expected defensive empty tag list, got %#v", got)
	}
}

func TestCountEntries_GrandTotalIgnoresFilter(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		e := &domain.Entry{ID: fmt.Sprintf("e%d", i), URL: "https://a.com", Context: "c", Hostname: "a.com", CreatedAt: time.Now().UTC()}
		if err := InsertEntry(context.Background(), db, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	total, err := CountEntries(context.Background(), db)
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3, got %d", total)
	}
}
