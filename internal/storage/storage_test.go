package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bunchhieng/arx/internal/model"
)

func setupTestStore(t *testing.T, titles ...string) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "bookmarks.json"))
	for _, title := range titles {
		if _, err := s.Add(NewBookmark{Title: title}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return s
}

func assertNormalized(t *testing.T, s *Store) {
	t.Helper()
	for i, b := range s.Bookmarks {
		if b.ID != i {
			t.Errorf("Expected bookmark %d to have ID %d, got %d", i, i, b.ID)
		}
	}
	if s.NextID != len(s.Bookmarks) {
		t.Errorf("Expected NextID %d, got %d", len(s.Bookmarks), s.NextID)
	}
}

func TestAdd(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.Add(NewBookmark{
		Title:    "Example",
		URL:      "https://example.com",
		Category: model.CategoryArticle,
		Tags:     []string{"test", "example"},
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if created.ID != 0 {
		t.Errorf("Expected ID 0, got %d", created.ID)
	}
	if !model.ValidUID(created.UID) {
		t.Errorf("Expected valid UID, got %s", created.UID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
	if created.Status != model.StatusNone {
		t.Errorf("Expected default status, got %v", created.Status)
	}
	if s.NextID != 1 {
		t.Errorf("Expected NextID 1, got %d", s.NextID)
	}

	second, _ := s.Add(NewBookmark{Title: "Second"})
	if second.ID != 1 {
		t.Errorf("Expected ID 1, got %d", second.ID)
	}
}

func TestAddEmptyTitle(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.Add(NewBookmark{Title: "  "}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d bookmarks", s.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 0 || s.NextID != 0 {
		t.Errorf("Expected fresh store, got %d bookmarks, next %d", s.Len(), s.NextID)
	}
	if s.Path() != path {
		t.Errorf("Expected path %s, got %s", path, s.Path())
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "bookmarks.json")
	s := New(path)
	s.Add(NewBookmark{Title: "Rust Book", URL: "https://doc.rust-lang.org/book", Category: model.CategoryBook})
	s.Add(NewBookmark{Title: "Notes", Notes: "remember", Tags: []string{"x"}, Hidden: true})
	s.Add(NewBookmark{Title: "Pending", Status: model.StatusPending})

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.NextID != s.NextID {
		t.Errorf("Expected NextID %d, got %d", s.NextID, loaded.NextID)
	}
	if len(loaded.Bookmarks) != len(s.Bookmarks) {
		t.Fatalf("Expected %d bookmarks, got %d", len(s.Bookmarks), len(loaded.Bookmarks))
	}
	for i := range s.Bookmarks {
		want, got := s.Bookmarks[i], loaded.Bookmarks[i]
		if !want.CreatedAt.Equal(got.CreatedAt) {
			t.Errorf("bookmark %d: CreatedAt %v != %v", i, want.CreatedAt, got.CreatedAt)
		}
		want.CreatedAt = got.CreatedAt
		if !reflect.DeepEqual(want, got) {
			t.Errorf("bookmark %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestLoadBackfillsUID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	doc := `{"next_id":1,"bookmarks":[{"id":0,"title":"Old","category":"Other","url":null,"tags":null,"notes":null,"status":"None","hidden":false,"created_at":"2024-01-01T00:00:00Z"}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !model.ValidUID(s.Bookmarks[0].UID) {
		t.Errorf("Expected backfilled UID, got %q", s.Bookmarks[0].UID)
	}
}

func TestRemoveByID(t *testing.T) {
	s := setupTestStore(t, "zero", "one", "two", "three")

	removed, err := s.Remove([]Query{IDQuery(1), IDQuery(3)}, nil)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(removed) != 2 || removed[0].Title != "one" || removed[1].Title != "three" {
		t.Errorf("Unexpected removed bookmarks: %+v", removed)
	}
	if s.Len() != 2 || s.Bookmarks[0].Title != "zero" || s.Bookmarks[1].Title != "two" {
		t.Errorf("Unexpected remaining bookmarks: %+v", s.Bookmarks)
	}
	assertNormalized(t, s)
}

func TestRemoveMissingIDLeavesStore(t *testing.T) {
	s := setupTestStore(t, "zero", "one")

	_, err := s.Remove([]Query{IDQuery(0), IDQuery(7)}, nil)
	var nf *model.IDNotFoundError
	if !errors.As(err, &nf) || nf.ID != 7 {
		t.Fatalf("Expected IDNotFoundError(7), got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Expected store untouched, got %d bookmarks", s.Len())
	}
}

func TestRemoveFuzzyRequiresConfirmation(t *testing.T) {
	s := setupTestStore(t, "Rust Book", "Go Tour")

	removed, err := s.Remove([]Query{TextQuery("tour")}, func(model.Bookmark) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(removed) != 0 || s.Len() != 2 {
		t.Errorf("Expected nothing removed when declined, got %+v", removed)
	}

	var asked string
	removed, err = s.Remove([]Query{TextQuery("tour")}, func(b model.Bookmark) (bool, error) {
		asked = b.Title
		return true, nil
	})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if asked != "Go Tour" {
		t.Errorf("Expected confirmation for 'Go Tour', got '%s'", asked)
	}
	if len(removed) != 1 || s.Len() != 1 || s.Bookmarks[0].Title != "Rust Book" {
		t.Errorf("Unexpected state after remove: %+v", s.Bookmarks)
	}
	assertNormalized(t, s)
}

func TestRemoveFuzzyWithoutConfirmFunc(t *testing.T) {
	s := setupTestStore(t, "Rust Book")
	removed, err := s.Remove([]Query{TextQuery("rust")}, nil)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(removed) != 0 || s.Len() != 1 {
		t.Error("Expected fuzzy removal without confirmation to be skipped")
	}
}

func TestNormalizationAcrossOperations(t *testing.T) {
	s := setupTestStore(t)
	for i := 0; i < 8; i++ {
		s.Add(NewBookmark{Title: fmt.Sprintf("bookmark %d", i)})
	}
	steps := [][]int{{0}, {3, 4}, {5}, {0, 1}}
	for _, ids := range steps {
		qs := make([]Query, 0, len(ids))
		for _, id := range ids {
			qs = append(qs, IDQuery(id))
		}
		if _, err := s.Remove(qs, nil); err != nil {
			t.Fatalf("Remove(%v) failed: %v", ids, err)
		}
		assertNormalized(t, s)

		b, _ := s.Add(NewBookmark{Title: "added"})
		if b.ID != s.Len()-1 {
			t.Errorf("Expected added ID %d, got %d", s.Len()-1, b.ID)
		}
	}
}

func TestEditAppliesAllFields(t *testing.T) {
	s := setupTestStore(t, "Old Title")

	title, url := "New Title", "https://example.com"
	hidden := true
	category := model.CategoryTool
	b, err := s.Edit(IDQuery(0), Edit{Title: &title, URL: &url, Hidden: &hidden, Category: &category, Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if b.Title != title || b.URL != url || !b.Hidden || b.Category != category || !b.HasTag("a") {
		t.Errorf("Expected all fields applied, got %+v", b)
	}
	if s.Bookmarks[0].Title != title {
		t.Error("Expected edit to be stored")
	}
}

func TestEditNothing(t *testing.T) {
	s := setupTestStore(t, "x")
	if _, err := s.Edit(IDQuery(0), Edit{}); !errors.Is(err, model.ErrNoEditSpecified) {
		t.Errorf("Expected ErrNoEditSpecified, got %v", err)
	}
}

func TestEditNotFound(t *testing.T) {
	s := setupTestStore(t, "x")
	notes := "n"
	_, err := s.Edit(IDQuery(4), Edit{Notes: &notes})
	var nf *model.IDNotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Expected IDNotFoundError, got %v", err)
	}
}

func TestMarkDone(t *testing.T) {
	s := setupTestStore(t, "Rust Book", "Go Tour")

	b, err := s.MarkDone(TextQuery("go tour"))
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if b.Title != "Go Tour" || s.Bookmarks[1].Status != model.StatusDone {
		t.Errorf("Expected 'Go Tour' done, got %+v", s.Bookmarks)
	}

	if _, err := s.SetStatus(IDQuery(1), model.StatusNone); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if s.Bookmarks[1].Status != model.StatusNone {
		t.Error("Expected status reset")
	}
}

func TestImport(t *testing.T) {
	s := setupTestStore(t, "existing")
	existing := s.Bookmarks[0]

	added := s.Import([]model.Bookmark{
		existing,
		{Title: "fresh", URL: "https://example.com", ID: 42},
		{Title: ""},
	})
	if added != 1 {
		t.Errorf("Expected 1 imported, got %d", added)
	}
	if s.Len() != 2 || s.Bookmarks[1].ID != 1 || s.Bookmarks[1].CreatedAt.IsZero() {
		t.Errorf("Unexpected imported bookmark: %+v", s.Bookmarks[1])
	}
	assertNormalized(t, s)
}
