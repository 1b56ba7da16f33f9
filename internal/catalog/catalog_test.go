package catalog

import (
	"testing"
)

func TestDefaultCatalogCostAndProfit(t *testing.T) {
	c := Default()

	var croissant, cookie Product
	for _, p := range c.Products() {
		switch p.Key {
		case "croissant":
			croissant = p
		case "butter_cookie":
			cookie = p
		}
	}
	if croissant.Key == "" || cookie.Key == "" {
		t.Fatal("Expected croissant and butter_cookie in the default catalog")
	}

	// 50g flour, 30g butter, 10g sugar, 1 egg
	if got := c.Cost(croissant).String(); got != "13.9" {
		t.Errorf("Expected croissant cost 13.9, got %s", got)
	}
	if got := c.Profit(croissant).String(); got != "36.1" {
		t.Errorf("Expected croissant profit 36.1, got %s", got)
	}

	// No eggs in the cookie recipe
	if got := c.Cost(cookie).String(); got != "4.4" {
		t.Errorf("Expected butter_cookie cost 4.4, got %s", got)
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()

	if len(c.Products()) != 8 {
		t.Fatalf("Expected 8 products, got %d", len(c.Products()))
	}

	seen := make(map[string]bool)
	for _, p := range c.Products() {
		if seen[p.Key] {
			t.Errorf("Duplicate product key %q", p.Key)
		}
		seen[p.Key] = true
		if p.BaseDemand <= 0 {
			t.Errorf("Product %q has non-positive base demand", p.Key)
		}
		if !p.Price.IsPositive() {
			t.Errorf("Product %q has non-positive price", p.Key)
		}
	}

	for _, r := range Resources {
		if !c.UnitCost(r).IsPositive() {
			t.Errorf("Resource %q has non-positive unit cost", r)
		}
	}
}
