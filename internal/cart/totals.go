package cart

import (
	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/pkg/config"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// Totals is the derived money summary of a cart. total = subtotal +
// shipping, always; there is no tax term.
type Totals struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// Pricing carries the storefront's shipping rule: free at or above the
// threshold, a flat fee below it.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// PricingFromConfig lifts configured rupee amounts into a Pricing.
func PricingFromConfig(cfg config.ShopConfig) Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(cfg.FreeShippingThreshold),
		FlatShippingFee:       decimal.NewFromInt(cfg.FlatShippingFee),
	}
}

// Compute recalculates totals from the line items. It runs after every local
// mutation, before the server has confirmed anything, and again after every
// reconciliation.
func (p Pricing) Compute(items []types.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	shipping := p.FlatShippingFee
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal.Add(shipping),
	}
}

// applyTo writes the recomputed totals back onto a cart value.
func (t Totals) applyTo(c *types.Cart) {
	c.Subtotal = t.Subtotal
	c.ShippingCost = t.ShippingCost
	c.Total = t.Total
}
