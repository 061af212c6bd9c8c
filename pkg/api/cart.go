package api

import (
	"context"
	"fmt"
	"net/http"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// GetCart fetches the session cart. A 404 means the backend has no cart for
// this session yet; that is an empty cart, not a failure.
func (c *Client) GetCart(ctx context.Context) (types.Cart, error) {
	var cart types.Cart
	err := c.do(ctx, http.MethodGet, "/api/cart", nil, &cart)
	if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		return types.Cart{}, nil
	}
	return cart, err
}

// AddCartItem puts a pack in the cart and returns the authoritative cart.
func (c *Client) AddCartItem(ctx context.Context, req types.AddToCartRequest) (types.Cart, error) {
	var cart types.Cart
	err := c.do(ctx, http.MethodPost, "/api/cart", req, &cart)
	return cart, err
}

// UpdateCartItem sets a cart line's quantity.
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	body := types.UpdateCartItemRequest{Quantity: quantity}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", itemID), body, nil)
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", itemID), nil, nil)
}

// ClearCart empties the cart, used after a successful order placement.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/cart/clear", nil, nil)
}
