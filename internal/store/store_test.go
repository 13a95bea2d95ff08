package store

import (
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := testStore(t)

	for _, url := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		if _, err := s.AddLink(Link{URL: url, Title: "t"}); err != nil {
			t.Fatalf("add %s: %v", url, err)
		}
	}

	links, err := s.ListLinks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	// Newest first: ids 3, 2, 1
	for i, want := range []int64{3, 2, 1} {
		if links[i].ID != want {
			t.Errorf("links[%d].ID = %d, want %d", i, links[i].ID, want)
		}
	}
}

func TestAddAssignsTimestamp(t *testing.T) {
	s := testStore(t)

	before := time.Now().UTC().Add(-time.Second)
	id, err := s.AddLink(Link{URL: "https://a.example", Title: "A"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != 1 {
		t.Errorf("first id = %d, want 1", id)
	}

	links, err := s.ListLinks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ts, err := time.Parse(time.RFC3339, links[0].Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q not RFC3339: %v", links[0].Timestamp, err)
	}
	if ts.Before(before) {
		t.Errorf("timestamp %v predates insertion", ts)
	}
}

func TestAddLinkIfAbsent(t *testing.T) {
	s := testStore(t)

	id, inserted, err := s.AddLinkIfAbsent(Link{URL: "https://a.example", Title: "A"})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !inserted || id != 1 {
		t.Fatalf("first insert: id=%d inserted=%v, want 1/true", id, inserted)
	}

	_, inserted, err = s.AddLinkIfAbsent(Link{URL: "https://a.example", Title: "A again"})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if inserted {
		t.Error("expected duplicate URL to be rejected")
	}

	links, err := s.ListLinks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("expected 1 link after duplicate insert, got %d", len(links))
	}
}

func TestAddLinkIfAbsentNoNormalization(t *testing.T) {
	s := testStore(t)

	// Exact string match only: trailing slash makes a distinct URL.
	if _, inserted, err := s.AddLinkIfAbsent(Link{URL: "http://x", Title: "x"}); err != nil || !inserted {
		t.Fatalf("insert http://x: inserted=%v err=%v", inserted, err)
	}
	if _, inserted, err := s.AddLinkIfAbsent(Link{URL: "http://x/", Title: "x"}); err != nil || !inserted {
		t.Fatalf("insert http://x/: inserted=%v err=%v", inserted, err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := testStore(t)

	id, err := s.AddLink(Link{URL: "https://a.example", Title: "A"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.DeleteLink(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting again, and deleting an id that never existed, both succeed.
	if err := s.DeleteLink(id); err != nil {
		t.Errorf("second delete: %v", err)
	}
	if err := s.DeleteLink(999); err != nil {
		t.Errorf("delete missing id: %v", err)
	}

	links, err := s.ListLinks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(links))
	}
}

func TestFindByURL(t *testing.T) {
	s := testStore(t)

	if _, err := s.AddLink(Link{URL: "https://a.example", Title: "A", Summary: "sum"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := s.FindByURL("https://a.example")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.Title != "A" || got.Summary != "sum" {
		t.Errorf("unexpected record: %+v", got)
	}

	missing, err := s.FindByURL("https://missing.example")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown url, got %+v", missing)
	}
}

func TestSettings(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.GetSetting("apiKey")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected apiKey to be absent")
	}

	if err := s.PutSetting("apiKey", "sk-test"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.PutSetting("apiKey", "sk-test2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := s.GetSetting("apiKey")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != "sk-test2" {
		t.Errorf("GetSetting = %q/%v, want sk-test2/true", v, ok)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	s := testStore(t)

	if _, err := s.AddLink(Link{URL: "https://a.example", Title: "A", Tags: []string{"go", "db"}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddLink(Link{URL: "https://b.example", Title: "B"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	links, err := s.ListLinks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links[0].Tags) != 0 {
		t.Errorf("expected no tags, got %v", links[0].Tags)
	}
	if len(links[1].Tags) != 2 || links[1].Tags[0] != "go" {
		t.Errorf("unexpected tags: %v", links[1].Tags)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, err := s.AddLink(Link{URL: "https://a.example", Title: "A"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	count, size, err := s.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}
}
