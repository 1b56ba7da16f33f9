package planner

import (
	"sort"

	"bakeplan/internal/catalog"
)

// scoreEpsilon floors the resource-pressure weight so that a product whose
// recipe consumes nothing still gets a finite score.
const scoreEpsilon = 1e-6

// AllocationPolicy holds the tuning constants of the greedy allocator.
// The cap keeps a single high-score product from consuming the whole run;
// it is an anti-domination measure, not an optimality claim.
type AllocationPolicy struct {
	// CapFraction is the share of remaining capacity one product may take.
	CapFraction float64
	// MinPerProduct is the floor applied before the fraction cap kicks in.
	MinPerProduct int
}

// DefaultPolicy reproduces the tuning observed in production.
var DefaultPolicy = AllocationPolicy{CapFraction: 0.35, MinPerProduct: 10}

type scoredProduct struct {
	product catalog.Product
	profit  float64
	score   float64
}

// Allocate distributes production capacity across the catalog under the
// current stock. Products are ranked by profit per unit of scarce resource
// consumed and allocated greedily until capacity or stock runs out. The
// passed stock is copied; the residual copy is returned with the items.
//
// Negative profit is legal and simply ranks last. Zero stock or capacity
// yields an empty plan, not an error.
func Allocate(c *catalog.Catalog, initial Stock, capacity int, fc Forecast, policy AllocationPolicy) ([]Item, Stock) {
	stock := Stock{}
	for _, r := range catalog.Resources {
		stock[r] = initial[r]
	}

	scored := make([]scoredProduct, 0, len(c.Products()))
	for _, p := range c.Products() {
		profit := c.Profit(p)
		weight := 0.0
		for _, r := range catalog.Resources {
			avail := stock[r]
			if avail < 1 {
				avail = 1
			}
			weight += float64(p.Recipe[r]) / float64(avail)
		}
		if weight < scoreEpsilon {
			weight = scoreEpsilon
		}
		profitF := profit.InexactFloat64()
		scored = append(scored, scoredProduct{product: p, profit: profitF, score: profitF / weight})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	items := []Item{}
	for _, entry := range scored {
		if capacity <= 0 {
			break
		}
		p := entry.product

		maxUnits := capacity
		for _, r := range catalog.Resources {
			need := p.Recipe[r]
			if need == 0 {
				continue // a zero-requirement resource is unconstrained
			}
			if m := stock[r] / need; m < maxUnits {
				maxUnits = m
			}
		}
		if maxUnits <= 0 {
			continue
		}

		limit := int(float64(capacity) * policy.CapFraction)
		if limit < policy.MinPerProduct {
			limit = policy.MinPerProduct
		}
		allocate := maxUnits
		if allocate > limit {
			allocate = limit
		}

		for _, r := range catalog.Resources {
			stock[r] -= allocate * p.Recipe[r]
		}
		capacity -= allocate

		leftover := allocate - fc[p.Name]
		if leftover < 0 {
			leftover = 0
		}

		cost := c.Cost(p)
		margin := 0.0
		if p.Price.IsPositive() {
			margin = p.Price.Sub(cost).Div(p.Price).Round(2).InexactFloat64()
		}
		items = append(items, Item{
			Product:          p.Name,
			Key:              p.Key,
			Quantity:         allocate,
			ProfitPerUnit:    entry.profit,
			ExpectedLeftover: leftover,
			SellingPrice:     p.Price.InexactFloat64(),
			ProductCost:      cost.Round(2).InexactFloat64(),
			GPMargin:         margin,
		})
	}
	return items, stock
}
