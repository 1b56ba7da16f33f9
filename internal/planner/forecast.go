package planner

import (
	"math"
	"time"

	"bakeplan/internal/catalog"
)

// demandDampening scales the raw multiplier product down to daily volumes.
const demandDampening = 0.3

var weatherMultipliers = map[string]float64{
	"sunny":    1.1,
	"rain":     0.7,
	"cloudy":   0.9,
	"overcast": 0.95,
}

var branchMultipliers = map[string]float64{
	"branch-a": 1.0,
	"branch-b": 1.2,
	"branch-c": 0.8,
}

// ForecastDemand predicts per-product unit demand for the given context.
// It is a pure function: unknown weather or branch categories degrade to a
// neutral multiplier instead of erroring, so the same context always yields
// the same table.
func ForecastDemand(c *catalog.Catalog, ctx Context) Forecast {
	dayMul := 1.0
	if wd := ctx.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		dayMul = 1.2
	}
	weatherMul, ok := weatherMultipliers[ctx.Weather]
	if !ok {
		weatherMul = 1.0
	}
	specialMul := 1.0
	if ctx.SpecialDay {
		specialMul = 1.3
	}
	branchMul, ok := branchMultipliers[ctx.Branch]
	if !ok {
		branchMul = 1.0
	}

	fc := make(Forecast, len(c.Products()))
	for _, p := range c.Products() {
		pred := int(math.Round(float64(p.BaseDemand) * dayMul * weatherMul * specialMul * branchMul * demandDampening))
		if pred < 0 {
			pred = 0
		}
		fc[p.Name] = pred
	}
	return fc
}
