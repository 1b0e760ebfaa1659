// ABOUTME: Tests for the SQLite prompt template store against a temp database file.
// ABOUTME: Covers the CRUD round-trip, tag persistence, and not-found errors.
package prompts

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prompts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := openTestStore(t)

	created, err := s.Create("haiku", "write a haiku about {{topic}}", []string{"poetry", "short"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created template has empty id")
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "haiku" || got.Content != "write a haiku about {{topic}}" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "poetry" || got.Tags[1] != "short" {
		t.Errorf("tags = %v, want [poetry short]", got.Tags)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestCreateNilTags(t *testing.T) {
	s := openTestStore(t)

	created, err := s.Create("bare", "content", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil slice", got.Tags)
	}
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)
	created, err := s.Create("old", "old content", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.Update(created.ID, "new", "new content", []string{"x"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "new" || updated.Content != "new content" {
		t.Errorf("update mismatch: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("updated_at went backwards")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update changed created_at")
	}
}

func TestUpdateMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Update("no-such-id", "n", "c", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	created, err := s.Create("doomed", "x", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"a", "b", "c"} {
		if _, err := s.Create(name, name+" content", nil); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].UpdatedAt.After(list[i-1].UpdatedAt) {
			t.Errorf("list not ordered newest-first at index %d", i)
		}
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
