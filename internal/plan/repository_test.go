package plan

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"bakeplan/internal/database"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL)
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	input := json.RawMessage(`{"branch":"branch-a","weather":"sunny"}`)
	result := json.RawMessage(`{"forecast":{},"plan":[],"remainingStock":{}}`)

	saved, err := repo.Save(ctx, "fallback", input, result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Expected a generated identifier")
	}

	loaded, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.ID != saved.ID {
		t.Errorf("Expected id %q, got %q", saved.ID, loaded.ID)
	}
	if loaded.Source != "fallback" {
		t.Errorf("Expected source 'fallback', got %q", loaded.Source)
	}
	if string(loaded.Input) != string(input) {
		t.Errorf("Input did not round-trip: %s", loaded.Input)
	}
	if string(loaded.Result) != string(result) {
		t.Errorf("Result did not round-trip: %s", loaded.Result)
	}
	if diff := loaded.CreatedAt.Sub(saved.CreatedAt); diff > time.Second || diff < -time.Second {
		t.Errorf("CreatedAt did not round-trip: saved %s, loaded %s", saved.CreatedAt, loaded.CreatedAt)
	}
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "no-such-plan")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveGeneratesUniqueIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		rec, err := repo.Save(ctx, "external", json.RawMessage(`{}`), json.RawMessage(`{}`))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if seen[rec.ID] {
			t.Fatalf("Duplicate identifier %q", rec.ID)
		}
		seen[rec.ID] = true
	}
}
