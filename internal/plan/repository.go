// Package plan persists planning records. Storage is append-only: a record
// is written once under a generated identifier and never mutated, so later
// retrieval can replay or audit any past plan.
package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bakeplan/internal/plan/plandb"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("plan not found")

// Record is a stored planning run: the originating input payload, the
// computed result, and which tier produced it.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Source    string          `json:"source"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
}

// Repository is a database-backed repository for plan records.
type Repository struct {
	queries *plandb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: plandb.New(d),
		db:      d,
	}
}

// Save writes a new record under a freshly generated identifier and returns
// the stored record. Identifiers are collision-free by construction.
func (r *Repository) Save(ctx context.Context, source string, input, result json.RawMessage) (Record, error) {
	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Input:     input,
		Result:    result,
	}
	err := r.queries.InsertPlan(ctx, plandb.InsertPlanParams{
		ID:         rec.ID,
		Source:     rec.Source,
		InputData:  string(rec.Input),
		ResultData: string(rec.Result),
		CreatedAt:  rec.CreatedAt,
	})
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert plan record: %w", err)
	}
	return rec, nil
}

// Get retrieves a record by its identifier, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	dbPlan, err := r.queries.GetPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get plan record %s: %w", id, err)
	}
	return &Record{
		ID:        dbPlan.ID,
		CreatedAt: dbPlan.CreatedAt,
		Source:    dbPlan.Source,
		Input:     json.RawMessage(dbPlan.InputData),
		Result:    json.RawMessage(dbPlan.ResultData),
	}, nil
}
