// Package orders is the order side of both surfaces: the customer's own
// history and the admin back-office table with its optimistic status
// dropdown.
package orders

import (
	"context"
	"fmt"

	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

type historyBackend interface {
	OrderHistory(ctx context.Context) ([]types.Order, error)
	GetOrder(ctx context.Context, id int64) (types.Order, error)
}

// History reads the customer's own orders.
type History struct {
	api    historyBackend
	logger *logger.Logger
}

// NewHistory builds the customer order reader.
func NewHistory(api historyBackend, logg *logger.Logger) (*History, error) {
	if api == nil {
		return nil, fmt.Errorf("orders backend required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &History{api: api, logger: logg}, nil
}

// List returns the customer's orders, newest first as the backend sends
// them.
func (h *History) List(ctx context.Context) ([]types.Order, error) {
	return h.api.OrderHistory(ctx)
}

// Get fetches one order for the detail view.
func (h *History) Get(ctx context.Context, id int64) (types.Order, error) {
	h.logger.Debug(h.logger.WithOrderID(ctx, id), "fetching order")
	return h.api.GetOrder(ctx, id)
}
