package store

import (
	"testing"

	"github.com/calloway/inkwell/internal/database"
)

func setupCategoryTestDB(t *testing.T) (*CategoryStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCategoryStore(db), NewUserStore(db)
}

func TestCategoryCRUD(t *testing.T) {
	cs, us := setupCategoryTestDB(t)

	alice := createTestUser(t, us, "alice@example.com")

	cat, err := cs.Create(alice.ID, "Work", "#FF0000")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if cat.Name != "Work" {
		t.Errorf("name = %q, want %q", cat.Name, "Work")
	}
	if cat.Color != "#FF0000" {
		t.Errorf("color = %q, want %q", cat.Color, "#FF0000")
	}
	if cat.UserID != alice.ID {
		t.Errorf("user_id = %d, want %d", cat.UserID, alice.ID)
	}

	got, err := cs.GetByID(alice.ID, cat.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if got == nil || got.Name != "Work" {
		t.Fatalf("got = %+v, want Work", got)
	}

	updated, err := cs.Update(alice.ID, cat.ID, "Projects", "#00FF00")
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated category, got nil")
	}
	if updated.Name != "Projects" || updated.Color != "#00FF00" {
		t.Errorf("updated = %+v, want Projects/#00FF00", updated)
	}

	deleted, err := cs.Delete(alice.ID, cat.ID)
	if err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report a removed row")
	}
	got, _ = cs.GetByID(alice.ID, cat.ID)
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestCategoryListOrdering(t *testing.T) {
	cs, us := setupCategoryTestDB(t)

	alice := createTestUser(t, us, "alice@example.com")

	cs.Create(alice.ID, "travel", "#111111")
	cs.Create(alice.ID, "Archive", "#222222")
	cs.Create(alice.ID, "Personal", "#333333")

	categories, err := cs.List(alice.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}

	// Ordered by name, case-insensitive
	expected := []string{"Archive", "Personal", "travel"}
	for i, e := range expected {
		if categories[i].Name != e {
			t.Errorf("categories[%d].Name = %q, want %q", i, categories[i].Name, e)
		}
	}
}

func TestCategoryOwnerScoping(t *testing.T) {
	cs, us := setupCategoryTestDB(t)

	alice := createTestUser(t, us, "alice@example.com")
	bob := createTestUser(t, us, "bob@example.com")

	cat, _ := cs.Create(alice.ID, "Private", "#FF0000")

	got, err := cs.GetByID(bob.ID, cat.ID)
	if err != nil {
		t.Fatalf("get as bob: %v", err)
	}
	if got != nil {
		t.Error("expected nil when reading another user's category")
	}

	updated, err := cs.Update(bob.ID, cat.ID, "Stolen", "#000000")
	if err != nil {
		t.Fatalf("update as bob: %v", err)
	}
	if updated != nil {
		t.Error("expected nil when updating another user's category")
	}

	deleted, err := cs.Delete(bob.ID, cat.ID)
	if err != nil {
		t.Fatalf("delete as bob: %v", err)
	}
	if deleted {
		t.Error("expected no deletion of another user's category")
	}

	categories, _ := cs.List(bob.ID)
	if len(categories) != 0 {
		t.Errorf("expected 0 categories for bob, got %d", len(categories))
	}
}

func TestCategoryDoubleDelete(t *testing.T) {
	cs, us := setupCategoryTestDB(t)

	alice := createTestUser(t, us, "alice@example.com")
	cat, _ := cs.Create(alice.ID, "Once", "#FF0000")

	deleted, _ := cs.Delete(alice.ID, cat.ID)
	if !deleted {
		t.Error("first delete should remove the row")
	}
	deleted, err := cs.Delete(alice.ID, cat.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("second delete should find nothing")
	}
}
