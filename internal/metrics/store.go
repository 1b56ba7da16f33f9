package metrics

import (
	"context"
	"database/sql"
	"time"

	"bakeplan/internal/metrics/metricsdb"
)

// PlanRunMetric records metadata for a single planning run.
type PlanRunMetric struct {
	Source    string
	Branch    string
	ItemCount int
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		db:      db,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(m PlanRunMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return s.queries.InsertPlanMetric(context.Background(), metricsdb.InsertPlanMetricParams{
		Source:    m.Source,
		Branch:    m.Branch,
		ItemCount: int64(m.ItemCount),
		LatencyMs: m.LatencyMS,
		Timestamp: ts,
	})
}

// DailyUsage represents planning activity for a single day.
type DailyUsage struct {
	Date           string
	TotalRuns      int
	TotalItems     int
	TotalLatencyMS int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02 15:04:05")
	rows, err := s.queries.GetDailyUsage(context.Background(), since)
	if err != nil {
		return nil, err
	}

	var results []DailyUsage
	for _, r := range rows {
		u := DailyUsage{
			TotalRuns: int(r.Count),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.Sum.Valid {
			u.TotalItems = int(r.Sum.Float64)
		}
		if r.Sum2.Valid {
			u.TotalLatencyMS = int(r.Sum2.Float64)
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) error {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	return s.queries.CleanupPlanMetrics(context.Background(), threshold)
}
