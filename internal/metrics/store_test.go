package metrics

import (
	"path/filepath"
	"testing"

	"bakeplan/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "metrics.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestRecordAndDailyUsage(t *testing.T) {
	store := newTestStore(t)

	metrics := []PlanRunMetric{
		{Source: "external", Branch: "branch-a", ItemCount: 8, LatencyMS: 120},
		{Source: "fallback", Branch: "branch-b", ItemCount: 5, LatencyMS: 3},
	}
	for _, m := range metrics {
		if err := store.Record(m); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].TotalRuns != 2 {
		t.Errorf("Expected 2 runs, got %d", usage[0].TotalRuns)
	}
	if usage[0].TotalItems != 13 {
		t.Errorf("Expected 13 plan rows, got %d", usage[0].TotalItems)
	}
	if usage[0].TotalLatencyMS != 123 {
		t.Errorf("Expected 123ms total latency, got %d", usage[0].TotalLatencyMS)
	}
}

func TestCleanupRemovesOldRecords(t *testing.T) {
	store := newTestStore(t)

	if err := store.Record(PlanRunMetric{Source: "fallback", Branch: "branch-a", ItemCount: 1, LatencyMS: 1}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// Threshold of zero days keeps nothing recorded before this call.
	if err := store.Cleanup(0); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("Expected no usage after cleanup, got %d rows", len(usage))
	}
}
