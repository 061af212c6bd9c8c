package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/pkg/config"
	"github.com/spiceshop/storefront-go/pkg/types"
)

func testPricing() Pricing {
	return PricingFromConfig(config.ShopConfig{FreeShippingThreshold: 500, FlatShippingFee: 50})
}

func item(price int64, qty int) types.CartItem {
	return types.CartItem{Price: decimal.NewFromInt(price), Quantity: qty}
}

func TestShippingThresholdInvariant(t *testing.T) {
	pricing := testPricing()
	tests := []struct {
		name     string
		items    []types.CartItem
		subtotal int64
		shipping int64
	}{
		{"below threshold", []types.CartItem{item(200, 2)}, 400, 50},
		{"exactly at threshold", []types.CartItem{item(250, 2)}, 500, 0},
		{"above threshold", []types.CartItem{item(300, 2)}, 600, 0},
		{"just under", []types.CartItem{item(499, 1)}, 499, 50},
		{"empty cart", nil, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := pricing.Compute(tt.items)
			if !totals.Subtotal.Equal(decimal.NewFromInt(tt.subtotal)) {
				t.Fatalf("subtotal %s, want %d", totals.Subtotal, tt.subtotal)
			}
			if !totals.ShippingCost.Equal(decimal.NewFromInt(tt.shipping)) {
				t.Fatalf("shipping %s, want %d", totals.ShippingCost, tt.shipping)
			}
			if !totals.Total.Equal(totals.Subtotal.Add(totals.ShippingCost)) {
				t.Fatalf("total %s != subtotal+shipping", totals.Total)
			}
		})
	}
}

func TestWorkedCheckoutExample(t *testing.T) {
	pricing := testPricing()

	// One item at Rs 200 x2: subtotal 400, shipping 50, total 450.
	items := []types.CartItem{item(200, 2)}
	totals := pricing.Compute(items)
	if !totals.Total.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected total 450, got %s", totals.Total)
	}

	// Adding Rs 150 x1 crosses the threshold: subtotal 550, shipping free.
	items = append(items, item(150, 1))
	totals = pricing.Compute(items)
	if !totals.Subtotal.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("expected subtotal 550, got %s", totals.Subtotal)
	}
	if !totals.ShippingCost.IsZero() {
		t.Fatalf("expected free shipping, got %s", totals.ShippingCost)
	}
	if !totals.Total.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("expected total 550, got %s", totals.Total)
	}
}

func TestComputeHandlesFractionalPrices(t *testing.T) {
	pricing := testPricing()
	items := []types.CartItem{
		{Price: decimal.RequireFromString("149.50"), Quantity: 3},
	}
	totals := pricing.Compute(items)
	if !totals.Subtotal.Equal(decimal.RequireFromString("448.50")) {
		t.Fatalf("subtotal %s", totals.Subtotal)
	}
	if !totals.Total.Equal(decimal.RequireFromString("498.50")) {
		t.Fatalf("total %s", totals.Total)
	}
}
