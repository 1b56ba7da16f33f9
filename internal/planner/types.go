package planner

import (
	"time"

	"bakeplan/internal/catalog"
)

// Default raw-material stock and capacity used when a request omits a field.
const (
	DefaultFlour    = 50000
	DefaultButter   = 15000
	DefaultSugar    = 40000
	DefaultEggs     = 300
	DefaultCapacity = 2000
)

// Inputs is the raw-material and capacity section of a planning request.
// Fields are pointers so that an omitted field can be told apart from an
// explicit zero: omitted fields take the defaults, explicit zeros are honored.
type Inputs struct {
	Flour        *int     `json:"flour,omitempty"`
	Eggs         *int     `json:"eggs,omitempty"`
	Butter       *int     `json:"butter,omitempty"`
	Sugar        *int     `json:"sugar,omitempty"`
	Capacity     *int     `json:"capacity,omitempty"`
	ProfitTarget *float64 `json:"profitTarget,omitempty"`
}

// Request is a full planning request as it crosses the wire.
type Request struct {
	Inputs     Inputs `json:"inputs"`
	Branch     string `json:"branch"`
	Date       string `json:"date"`
	Weather    string `json:"weather"`
	SpecialDay bool   `json:"special_day"`
}

// Context is the immutable contextual input to a single planning run.
type Context struct {
	Branch     string
	Date       time.Time
	Weather    string
	SpecialDay bool
}

// Context resolves the request into a planning context. An unparsable or
// missing date falls back to the current time rather than erroring.
func (r Request) Context() Context {
	date := time.Now()
	if r.Date != "" {
		if parsed, err := time.Parse(time.RFC3339, r.Date); err == nil {
			date = parsed
		}
	}
	return Context{
		Branch:     r.Branch,
		Date:       date,
		Weather:    r.Weather,
		SpecialDay: r.SpecialDay,
	}
}

// Stock maps each resource kind to its available quantity.
type Stock map[catalog.Resource]int

// Stock resolves the request inputs into an initial stock and capacity.
// Omitted fields take the defaults; negative values are clamped to zero,
// which is the explicit contract for invalid quantities.
func (in Inputs) Stock() (Stock, int) {
	stock := Stock{
		catalog.Flour:  clamp(in.Flour, DefaultFlour),
		catalog.Butter: clamp(in.Butter, DefaultButter),
		catalog.Sugar:  clamp(in.Sugar, DefaultSugar),
		catalog.Eggs:   clamp(in.Eggs, DefaultEggs),
	}
	return stock, clamp(in.Capacity, DefaultCapacity)
}

func clamp(v *int, def int) int {
	if v == nil {
		return def
	}
	if *v < 0 {
		return 0
	}
	return *v
}

// Forecast maps product display name to predicted unit demand.
type Forecast map[string]int

// Item is one allocated row of a production plan.
type Item struct {
	Product             string  `json:"product"`
	Key                 string  `json:"key"`
	Quantity            int     `json:"quantity"`
	ProfitPerUnit       float64 `json:"profitPerUnit"`
	ExpectedLeftover    int     `json:"expected_leftover"`
	SellingPrice        float64 `json:"selling_price"`
	ProductCost         float64 `json:"product_cost"`
	GPMargin            float64 `json:"gp_margin"`
	PromotionSuggestion *string `json:"promotion_suggestion"`
}

// Result is the outcome of a planning run.
type Result struct {
	Forecast       Forecast `json:"forecast"`
	Plan           []Item   `json:"plan"`
	RemainingStock Stock    `json:"remainingStock"`
}
