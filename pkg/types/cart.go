package types

import "github.com/shopspring/decimal"

// Cart is the server-owned cart as rendered to the customer. The client may
// hold a provisional copy while a mutation is in flight, but the backend's
// next response always wins.
type Cart struct {
	ID           int64           `json:"id"`
	Items        []CartItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Total        decimal.Decimal `json:"total"`
}

// Clone deep-copies the cart so a snapshot survives later mutation of the
// original.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// IsEmpty reports whether there is nothing to check out.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartItem is one line of the cart. Quantity must stay within
// [1, MaxQuantityAvailable]; the client enforces this before any request.
type CartItem struct {
	ID                   int64           `json:"id"`
	SpiceID              int64           `json:"spiceId"`
	SpiceName            string          `json:"spiceName"`
	QualityClass         string          `json:"qualityClass"`
	PackWeightInGrams    int             `json:"packWeightInGrams"`
	Price                decimal.Decimal `json:"price"`
	Quantity             int             `json:"quantity"`
	MaxQuantityAvailable int             `json:"maxQuantityAvailable"`
	ImageURL             string          `json:"imageUrl"`
}

// LineTotal returns unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddToCartRequest is the payload for adding a pack to the cart.
type AddToCartRequest struct {
	SpiceID  int64 `json:"spiceId" validate:"required"`
	PackID   int64 `json:"packId" validate:"required"`
	Quantity int   `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest carries the new quantity for a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
