// Package planner implements the deterministic production planning engine:
// demand forecasting from contextual multipliers, greedy capacity allocation
// under multi-resource limits, and promotion inference on the allocated rows.
//
// BuildPlan is the single shared implementation consumed by both the
// server-side fallback and the client-side fallback, so the two tiers cannot
// drift apart.
package planner

import "bakeplan/internal/catalog"

// BuildPlan runs a full planning pass over the request: forecast, allocation,
// promotions. It is pure and deterministic; identical requests always yield
// identical results.
func BuildPlan(c *catalog.Catalog, req Request) *Result {
	return BuildPlanWithPolicy(c, req, DefaultPolicy)
}

// BuildPlanWithPolicy is BuildPlan with an explicit allocation policy.
func BuildPlanWithPolicy(c *catalog.Catalog, req Request, policy AllocationPolicy) *Result {
	ctx := req.Context()
	stock, capacity := req.Inputs.Stock()

	fc := ForecastDemand(c, ctx)
	items, remaining := Allocate(c, stock, capacity, fc, policy)
	for i := range items {
		items[i].PromotionSuggestion = SuggestPromotion(items[i].ExpectedLeftover, fc[items[i].Product], ctx.SpecialDay)
	}

	return &Result{
		Forecast:       fc,
		Plan:           items,
		RemainingStock: remaining,
	}
}
