package catalog

import (
	"github.com/shopspring/decimal"
)

// Resource identifies one of the raw materials a recipe consumes.
type Resource string

const (
	Flour  Resource = "flour"
	Butter Resource = "butter"
	Sugar  Resource = "sugar"
	Eggs   Resource = "eggs"
)

// Resources lists all resource kinds in a stable order.
var Resources = []Resource{Flour, Butter, Sugar, Eggs}

// Recipe holds the per-unit resource consumption of a product.
type Recipe map[Resource]int

// Product is a single catalog entry. Products are immutable after startup.
type Product struct {
	Key        string
	Name       string
	Price      decimal.Decimal
	Recipe     Recipe
	BaseDemand int
}

// Catalog is the static product table plus per-resource unit costs.
type Catalog struct {
	products  []Product
	unitCosts map[Resource]decimal.Decimal
}

// New builds a catalog from an explicit product list and cost table.
func New(products []Product, unitCosts map[Resource]decimal.Decimal) *Catalog {
	return &Catalog{products: products, unitCosts: unitCosts}
}

// Default returns the standard bakery catalog.
func Default() *Catalog {
	return New([]Product{
		{Key: "croissant", Name: "Croissant", Price: price(50), Recipe: Recipe{Flour: 50, Butter: 30, Sugar: 10, Eggs: 1}, BaseDemand: 120},
		{Key: "butter_cookie", Name: "Butter Cookie", Price: price(15), Recipe: Recipe{Flour: 20, Butter: 15, Sugar: 10, Eggs: 0}, BaseDemand: 300},
		{Key: "taiwan_cake", Name: "Taiwan Castella", Price: price(40), Recipe: Recipe{Flour: 30, Butter: 5, Sugar: 25, Eggs: 2}, BaseDemand: 80},
		{Key: "brownie", Name: "Brownie", Price: price(55), Recipe: Recipe{Flour: 25, Butter: 20, Sugar: 30, Eggs: 1}, BaseDemand: 90},
		{Key: "pound_cake", Name: "Pound Cake", Price: price(80), Recipe: Recipe{Flour: 100, Butter: 10, Sugar: 15, Eggs: 1}, BaseDemand: 60},
		{Key: "macaron", Name: "Macaron", Price: price(25), Recipe: Recipe{Flour: 15, Butter: 8, Sugar: 20, Eggs: 2}, BaseDemand: 45},
		{Key: "choco_cake", Name: "Chocolate Cake", Price: price(65), Recipe: Recipe{Flour: 35, Butter: 25, Sugar: 35, Eggs: 2}, BaseDemand: 70},
		{Key: "fruit_tart", Name: "Fruit Tart", Price: price(45), Recipe: Recipe{Flour: 40, Butter: 20, Sugar: 15, Eggs: 1}, BaseDemand: 55},
	}, map[Resource]decimal.Decimal{
		Flour:  decimal.RequireFromString("0.05"),
		Butter: decimal.RequireFromString("0.2"),
		Sugar:  decimal.RequireFromString("0.04"),
		Eggs:   decimal.RequireFromString("5"),
	})
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Products returns the catalog entries in their defined order.
func (c *Catalog) Products() []Product {
	return c.products
}

// UnitCost returns the cost of one unit of the given resource.
func (c *Catalog) UnitCost(r Resource) decimal.Decimal {
	return c.unitCosts[r]
}

// Cost computes the raw-material cost of producing one unit of p.
func (c *Catalog) Cost(p Product) decimal.Decimal {
	total := decimal.Zero
	for _, r := range Resources {
		qty := p.Recipe[r]
		if qty == 0 {
			continue
		}
		total = total.Add(c.unitCosts[r].Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// Profit computes the per-unit profit of p (price minus cost).
// Products priced below cost yield a negative profit; they stay in the
// catalog and simply rank last during allocation.
func (c *Catalog) Profit(p Product) decimal.Decimal {
	return p.Price.Sub(c.Cost(p))
}
