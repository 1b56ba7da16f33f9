package planner

// Leftover thresholds that trigger a promotion suggestion.
const (
	leftoverRatioThreshold = 0.3
	urgencyLeftoverUnits   = 10
)

const (
	promoPriceCut = "Recommended promotion: 20% price cut"
	promoBundle   = "Bundle with a coffee set"
	promoUrgency  = "Push sales early to clear expected surplus"
)

// SuggestPromotion derives a promotion for one allocated item from its
// expected leftover and forecast demand. The rule order is significant: the
// leftover-ratio rule wins over the special-day rule, which wins over the
// flat-leftover rule. Returns nil when no promotion applies.
func SuggestPromotion(leftover, forecast int, specialDay bool) *string {
	switch {
	case forecast > 0 && float64(leftover)/float64(max(1, forecast)) > leftoverRatioThreshold:
		return ptr(promoPriceCut)
	case specialDay:
		return ptr(promoBundle)
	case leftover > urgencyLeftoverUnits:
		return ptr(promoUrgency)
	}
	return nil
}

func ptr(s string) *string {
	return &s
}
