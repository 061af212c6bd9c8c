package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spiceshop/storefront-go/pkg/enums"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// PlaceOrder submits the checkout. The backend owns pricing; the response
// carries the Razorpay order id when the gateway is the chosen method.
func (c *Client) PlaceOrder(ctx context.Context, req types.PlaceOrderRequest) (types.OrderPlacement, error) {
	var placement types.OrderPlacement
	err := c.do(ctx, http.MethodPost, "/api/orders/place", req, &placement)
	return placement, err
}

// OrderHistory lists the logged-in customer's orders.
func (c *Client) OrderHistory(ctx context.Context) ([]types.Order, error) {
	var orders []types.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/history", nil, &orders)
	return orders, err
}

// GetOrder fetches one of the customer's own orders.
func (c *Client) GetOrder(ctx context.Context, id int64) (types.Order, error) {
	var order types.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &order)
	return order, err
}

// AllOrders lists every order for the admin table. The backend returns the
// full collection; filtering and paging happen client-side.
func (c *Client) AllOrders(ctx context.Context) ([]types.Order, error) {
	var orders []types.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/all", nil, &orders, asAdmin())
	return orders, err
}

// AdminGetOrder fetches any order by id for the back office.
func (c *Client) AdminGetOrder(ctx context.Context, id int64) (types.Order, error) {
	var order types.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/admin/%d", id), nil, &order, asAdmin())
	return order, err
}

// AdminUpdateOrderStatus is the single-field status PATCH.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, id int64, status enums.OrderStatus) error {
	body := types.StatusUpdateRequest{Status: status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/orders/admin/%d/status", id), body, nil, asAdmin())
}
