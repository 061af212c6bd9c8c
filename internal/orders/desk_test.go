package orders

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/internal/listview"
	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/pkg/enums"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

type fakeDeskBackend struct {
	orders    []types.Order
	statusErr error
	patched   map[int64]enums.OrderStatus
	calls     []string
}

func (f *fakeDeskBackend) AllOrders(ctx context.Context) ([]types.Order, error) {
	f.calls = append(f.calls, "all")
	out := make([]types.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeDeskBackend) AdminGetOrder(ctx context.Context, id int64) (types.Order, error) {
	f.calls = append(f.calls, "get")
	for _, order := range f.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return types.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (f *fakeDeskBackend) AdminUpdateOrderStatus(ctx context.Context, id int64, status enums.OrderStatus) error {
	f.calls = append(f.calls, "patch")
	if f.statusErr != nil {
		return f.statusErr
	}
	if f.patched == nil {
		f.patched = map[int64]enums.OrderStatus{}
	}
	f.patched[id] = status
	return nil
}

func orderFixture(id int64, number, customer string, status enums.OrderStatus, total int64) types.Order {
	return types.Order{
		ID:            id,
		OrderNumber:   number,
		CustomerName:  customer,
		CustomerEmail: fmt.Sprintf("%s@customers.example", number),
		OrderStatus:   status,
		TotalAmount:   decimal.NewFromInt(total),
	}
}

func newDesk(t *testing.T, api *fakeDeskBackend) (*Desk, *notify.Center) {
	t.Helper()
	banners := notify.NewCenter()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	desk, err := NewDesk(api, 8, banners, 5*time.Second, logg)
	if err != nil {
		t.Fatalf("NewDesk: %v", err)
	}
	if err := desk.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return desk, banners
}

func TestSearchCoversNumberNameAndEmail(t *testing.T) {
	api := &fakeDeskBackend{orders: []types.Order{
		orderFixture(1, "ORD-1001", "Asha Nair", enums.OrderStatusPlaced, 700),
		orderFixture(2, "ORD-1002", "Vikram Rao", enums.OrderStatusShipped, 300),
		orderFixture(3, "ORD-1003", "Meera Pillai", enums.OrderStatusPlaced, 900),
	}}
	desk, _ := newDesk(t, api)

	for query, wantID := range map[string]int64{
		"1002":              2,
		"meera":             3,
		"ord-1001@customer": 1,
	} {
		desk.SetFilters(DeskFilters{Search: query})
		page := desk.Page()
		if len(page) != 1 || page[0].ID != wantID {
			t.Fatalf("query %q: expected order %d, got %+v", query, wantID, page)
		}
	}
}

func TestStatusAndAmountFiltersCompose(t *testing.T) {
	api := &fakeDeskBackend{orders: []types.Order{
		orderFixture(1, "ORD-1", "A", enums.OrderStatusPlaced, 700),
		orderFixture(2, "ORD-2", "B", enums.OrderStatusPlaced, 200),
		orderFixture(3, "ORD-3", "C", enums.OrderStatusShipped, 700),
	}}
	desk, _ := newDesk(t, api)

	placed := enums.OrderStatusPlaced
	min := decimal.NewFromInt(500)
	desk.SetFilters(DeskFilters{Status: &placed, MinAmount: &min})
	page := desk.Page()
	if len(page) != 1 || page[0].ID != 1 {
		t.Fatalf("expected the expensive placed order, got %+v", page)
	}
}

func TestPageSizeEightWindows(t *testing.T) {
	var all []types.Order
	for i := int64(1); i <= 20; i++ {
		all = append(all, orderFixture(i, fmt.Sprintf("ORD-%d", i), "X", enums.OrderStatusPlaced, 100))
	}
	desk, _ := newDesk(t, &fakeDeskBackend{orders: all})

	if desk.TotalPages() != 3 {
		t.Fatalf("20 orders over pages of 8 is 3 pages, got %d", desk.TotalPages())
	}
	if got := len(desk.Page()); got != 8 {
		t.Fatalf("page 1 has 8 rows, got %d", got)
	}
	desk.GoTo(3)
	if got := len(desk.Page()); got != 4 {
		t.Fatalf("page 3 has the 4 leftovers, got %d", got)
	}
	desk.Next()
	if desk.PageIndex() != 3 {
		t.Fatalf("next past the end must clamp, got %d", desk.PageIndex())
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	var all []types.Order
	for i := int64(1); i <= 20; i++ {
		all = append(all, orderFixture(i, fmt.Sprintf("ORD-%d", i), "X", enums.OrderStatusPlaced, 100))
	}
	desk, _ := newDesk(t, &fakeDeskBackend{orders: all})

	desk.GoTo(3)
	desk.SetFilters(DeskFilters{Search: "ord"})
	if desk.PageIndex() != 1 {
		t.Fatalf("filter change must reset to page 1, got %d", desk.PageIndex())
	}
}

func TestUpdateStatusOptimistic(t *testing.T) {
	api := &fakeDeskBackend{orders: []types.Order{
		orderFixture(1, "ORD-1", "A", enums.OrderStatusPlaced, 700),
	}}
	desk, _ := newDesk(t, api)

	if err := desk.UpdateStatus(context.Background(), 1, enums.OrderStatusShipped); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if desk.Page()[0].OrderStatus != enums.OrderStatusShipped {
		t.Fatalf("row must show the new status at once")
	}
	if api.patched[1] != enums.OrderStatusShipped {
		t.Fatalf("backend must receive the patch")
	}
	for _, call := range api.calls[1:] {
		if call == "all" {
			t.Fatalf("status update must not refetch the table: %v", api.calls)
		}
	}
}

func TestUpdateStatusRollsBack(t *testing.T) {
	api := &fakeDeskBackend{orders: []types.Order{
		orderFixture(1, "ORD-1", "A", enums.OrderStatusPlaced, 700),
	}}
	desk, banners := newDesk(t, api)
	before := desk.Page()

	api.statusErr = pkgerrors.New(pkgerrors.CodeConflict, "order already delivered")
	if err := desk.UpdateStatus(context.Background(), 1, enums.OrderStatusCancelled); err == nil {
		t.Fatalf("expected rejection")
	}
	if !reflect.DeepEqual(desk.Page(), before) {
		t.Fatalf("rejection must restore the exact prior row")
	}
	active := banners.Active()
	if len(active) != 1 || active[0].Text != "order already delivered" {
		t.Fatalf("expected error banner, got %+v", active)
	}
}

func TestUnknownStatusRejectedLocally(t *testing.T) {
	api := &fakeDeskBackend{orders: []types.Order{
		orderFixture(1, "ORD-1", "A", enums.OrderStatusPlaced, 700),
	}}
	desk, _ := newDesk(t, api)
	before := len(api.calls)

	err := desk.UpdateStatus(context.Background(), 1, enums.OrderStatus("MISPLACED"))
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(api.calls) != before {
		t.Fatalf("invalid status must not reach the backend: %v", api.calls[before:])
	}
}

func TestVerdicts(t *testing.T) {
	desk, _ := newDesk(t, &fakeDeskBackend{})
	if desk.Verdict() != listview.NoData {
		t.Fatalf("empty table is no-data")
	}

	desk, _ = newDesk(t, &fakeDeskBackend{orders: []types.Order{
		orderFixture(1, "ORD-1", "A", enums.OrderStatusPlaced, 700),
	}})
	desk.SetFilters(DeskFilters{Search: "zzz"})
	if desk.Verdict() != listview.NoMatches {
		t.Fatalf("unmatched filters are no-matches")
	}
}
