package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/internal/listview"
	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/internal/optimistic"
	"github.com/spiceshop/storefront-go/pkg/enums"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

type deskBackend interface {
	AllOrders(ctx context.Context) ([]types.Order, error)
	AdminGetOrder(ctx context.Context, id int64) (types.Order, error)
	AdminUpdateOrderStatus(ctx context.Context, id int64, status enums.OrderStatus) error
}

// DeskFilters is the admin order table's filter row.
type DeskFilters struct {
	Search    string
	Status    *enums.OrderStatus
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Desk is the back-office order table: every order fetched once, filtered
// and paged locally, with the status dropdown committing optimistically.
type Desk struct {
	api       deskBackend
	orders    *optimistic.Store[[]types.Order]
	view      *listview.View[types.Order]
	filters   DeskFilters
	banners   *notify.Center
	bannerTTL time.Duration
	logger    *logger.Logger
}

// NewDesk builds the admin order desk.
func NewDesk(api deskBackend, pageSize int, banners *notify.Center, bannerTTL time.Duration, logg *logger.Logger) (*Desk, error) {
	if api == nil {
		return nil, fmt.Errorf("orders backend required")
	}
	if banners == nil {
		return nil, fmt.Errorf("banner center required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Desk{
		api:       api,
		orders:    optimistic.NewStore(nil, cloneOrders),
		view:      listview.New[types.Order](nil, pageSize),
		banners:   banners,
		bannerTTL: bannerTTL,
		logger:    logg,
	}, nil
}

func cloneOrders(orders []types.Order) []types.Order {
	out := make([]types.Order, len(orders))
	copy(out, orders)
	return out
}

// Refresh fetches every order and re-applies the current filters from
// page 1.
func (d *Desk) Refresh(ctx context.Context) error {
	orders, err := d.api.AllOrders(ctx)
	if err != nil {
		return err
	}
	d.orders.Set(orders)
	d.rebuildView(false)
	return nil
}

// SetFilters installs the filter row and resets to page 1.
func (d *Desk) SetFilters(f DeskFilters) {
	d.filters = f
	d.rebuildView(false)
}

func (d *Desk) rebuildView(preservePage bool) {
	page := d.view.PageIndex()
	d.view.Reload(d.orders.Get())
	d.view.SetFilters(
		listview.TextSearch(d.filters.Search, func(o types.Order) []string {
			return []string{o.OrderNumber, o.CustomerName, o.CustomerEmail}
		}),
		listview.Equals(d.filters.Status, func(o types.Order) enums.OrderStatus {
			return o.OrderStatus
		}),
		listview.AmountRange(d.filters.MinAmount, d.filters.MaxAmount, func(o types.Order) decimal.Decimal {
			return o.TotalAmount
		}),
	)
	if preservePage {
		d.view.GoTo(page)
	}
}

// Page returns the current window of the filtered table.
func (d *Desk) Page() []types.Order { return d.view.Page() }

// PageIndex returns the 1-based current page.
func (d *Desk) PageIndex() int { return d.view.PageIndex() }

// TotalPages returns the page count over the filtered subset.
func (d *Desk) TotalPages() int { return d.view.TotalPages() }

// FilteredLen reports how many orders match the filter row.
func (d *Desk) FilteredLen() int { return d.view.FilteredLen() }

// Verdict classifies an empty table for messaging.
func (d *Desk) Verdict() listview.Emptiness { return d.view.Verdict() }

// Next advances one page.
func (d *Desk) Next() { d.view.Next() }

// Prev steps back one page.
func (d *Desk) Prev() { d.view.Prev() }

// GoTo jumps to a page, clamped.
func (d *Desk) GoTo(page int) { d.view.GoTo(page) }

// Detail fetches one order with its full item list.
func (d *Desk) Detail(ctx context.Context, id int64) (types.Order, error) {
	d.logger.Debug(d.logger.WithOrderID(ctx, id), "fetching order")
	return d.api.AdminGetOrder(ctx, id)
}

// UpdateStatus moves an order's status optimistically. Unknown statuses are
// rejected before any request; a backend rejection snaps the row back to
// its prior status.
func (d *Desk) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) error {
	if !status.IsValid() {
		message := fmt.Sprintf("unknown order status %q", status)
		d.banners.Post(notify.KindError, message, d.bannerTTL)
		return pkgerrors.New(pkgerrors.CodeValidation, message)
	}
	if _, ok := d.findOrder(id); !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such order")
	}

	err := d.orders.Mutate(ctx,
		func(orders []types.Order) []types.Order {
			for i := range orders {
				if orders[i].ID == id {
					orders[i].OrderStatus = status
				}
			}
			return orders
		},
		func(ctx context.Context) error {
			return d.api.AdminUpdateOrderStatus(ctx, id, status)
		},
		nil,
	)
	d.rebuildView(true)
	if err != nil {
		d.bannerError(err, "failed to update order status")
		return err
	}
	d.logger.Info(d.logger.WithOrderID(ctx, id), "order status updated")
	return nil
}

func (d *Desk) findOrder(id int64) (types.Order, bool) {
	for _, order := range d.orders.Get() {
		if order.ID == id {
			return order, true
		}
	}
	return types.Order{}, false
}

func (d *Desk) bannerError(err error, fallback string) {
	message := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	d.banners.Post(notify.KindError, message, d.bannerTTL)
}
