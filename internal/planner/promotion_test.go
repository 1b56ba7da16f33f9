package planner

import "testing"

func TestSuggestPromotion(t *testing.T) {
	tests := []struct {
		name     string
		leftover int
		forecast int
		special  bool
		want     string // empty means no suggestion
	}{
		{"high leftover ratio", 31, 100, false, promoPriceCut},
		{"ratio rule beats special day", 31, 100, true, promoPriceCut},
		{"special day", 5, 100, true, promoBundle},
		{"ratio at threshold falls through to urgency", 30, 100, false, promoUrgency},
		{"zero forecast disables ratio rule", 11, 0, false, promoUrgency},
		{"special day beats urgency", 11, 0, true, promoBundle},
		{"small leftover", 5, 100, false, ""},
		{"leftover at urgency threshold", 10, 0, false, ""},
		{"nothing", 0, 50, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestPromotion(tt.leftover, tt.forecast, tt.special)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("Expected no suggestion, got %q", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Expected %q, got nil", tt.want)
			}
			if *got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, *got)
			}
		})
	}
}
