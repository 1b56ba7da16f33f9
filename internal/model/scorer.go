// Package model selects between the external scoring process and the local
// deterministic planner. The external model is treated as a replaceable
// collaborator behind the Scorer interface; any failure on its side is
// absorbed by the fallback policy and never surfaces to the caller.
package model

import (
	"context"
	"log"

	"bakeplan/internal/catalog"
	"bakeplan/internal/planner"
)

// Source tags reported in planning responses.
const (
	SourceExternal = "external"
	SourceFallback = "fallback"
)

// Scorer computes a production plan for a request.
type Scorer interface {
	Score(ctx context.Context, req planner.Request) (*planner.Result, error)
}

// LocalScorer is the deterministic in-process planner.
type LocalScorer struct {
	Catalog *catalog.Catalog
}

// NewLocalScorer creates a LocalScorer over the given catalog.
func NewLocalScorer(c *catalog.Catalog) LocalScorer {
	return LocalScorer{Catalog: c}
}

// Score runs the local planning engine. It cannot fail: a plan is always
// producible from stock and context alone.
func (s LocalScorer) Score(_ context.Context, req planner.Request) (*planner.Result, error) {
	return planner.BuildPlan(s.Catalog, req), nil
}

// Bridge tries the external scorer first and falls back to the local one on
// any failure. External is optional; when nil every request goes local.
type Bridge struct {
	External Scorer
	Local    LocalScorer
}

// Plan computes a plan and reports which tier produced it. External failures
// are logged and recovered; no retry is attempted because the local planner
// always answers.
func (b *Bridge) Plan(ctx context.Context, req planner.Request) (*planner.Result, string) {
	if b.External != nil {
		res, err := b.External.Score(ctx, req)
		if err == nil {
			return res, SourceExternal
		}
		log.Printf("External model failed, using local planner: %v", err)
	}
	res, _ := b.Local.Score(ctx, req)
	return res, SourceFallback
}
