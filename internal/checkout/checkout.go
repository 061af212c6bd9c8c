// Package checkout drives order placement: the address picker, the payment
// method choice, and the two settlement paths (cash on delivery and the
// Razorpay gateway with backend signature verification).
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/internal/cart"
	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/internal/wizard"
	"github.com/spiceshop/storefront-go/pkg/config"
	"github.com/spiceshop/storefront-go/pkg/enums"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

type cartSource interface {
	Cart() types.Cart
	Totals() cart.Totals
	Clear(ctx context.Context) error
}

type checkoutBackend interface {
	PlaceOrder(ctx context.Context, req types.PlaceOrderRequest) (types.OrderPlacement, error)
	VerifyPayment(ctx context.Context, req types.PaymentVerification) error
}

// Gateway collects a payment for a placed order and returns the signed
// result. The loopback callback server is the production implementation.
type Gateway interface {
	Collect(ctx context.Context, placement types.OrderPlacement) (GatewayResult, error)
}

// GatewayResult is the signed triple Razorpay hands back on success.
type GatewayResult struct {
	PaymentID string
	OrderID   string
	Signature string
}

// PaymentOption is one row of the payment method chooser.
type PaymentOption struct {
	Method   enums.PaymentMethod
	Disabled bool
	Reason   string
}

// Flow is one checkout attempt over the current cart.
type Flow struct {
	api       checkoutBackend
	cart      cartSource
	addresses *wizard.AddressFlow
	gateway   Gateway
	codLimit  decimal.Decimal
	method    enums.PaymentMethod
	banners   *notify.Center
	bannerTTL time.Duration
	logger    *logger.Logger
}

// NewFlow builds a checkout over the live cart. The gateway may be nil when
// the build only ever uses cash on delivery.
func NewFlow(
	api checkoutBackend,
	cartSrc cartSource,
	addresses *wizard.AddressFlow,
	gateway Gateway,
	shop config.ShopConfig,
	banners *notify.Center,
	bannerTTL time.Duration,
	logg *logger.Logger,
) (*Flow, error) {
	if api == nil {
		return nil, fmt.Errorf("checkout backend required")
	}
	if cartSrc == nil {
		return nil, fmt.Errorf("cart source required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address flow required")
	}
	if banners == nil {
		return nil, fmt.Errorf("banner center required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Flow{
		api:       api,
		cart:      cartSrc,
		addresses: addresses,
		gateway:   gateway,
		codLimit:  decimal.NewFromInt(shop.CODLimit),
		method:    enums.PaymentMethodRazorpay,
		banners:   banners,
		bannerTTL: bannerTTL,
		logger:    logg,
	}, nil
}

// Addresses exposes the address picker sub-flow.
func (f *Flow) Addresses() *wizard.AddressFlow {
	return f.addresses
}

// PaymentOptions lists the choices for the current cart total. Cash on
// delivery is offered but disabled above the COD limit; it never disappears
// from the list.
func (f *Flow) PaymentOptions() []PaymentOption {
	options := []PaymentOption{{Method: enums.PaymentMethodRazorpay}}
	cod := PaymentOption{Method: enums.PaymentMethodCOD}
	if f.cart.Totals().Total.GreaterThan(f.codLimit) {
		cod.Disabled = true
		cod.Reason = fmt.Sprintf("Cash on delivery is unavailable for orders above ₹%s", f.codLimit.String())
	}
	return append(options, cod)
}

// Method returns the currently selected payment method.
func (f *Flow) Method() enums.PaymentMethod {
	return f.method
}

// SelectMethod picks the payment method, refusing disabled options.
func (f *Flow) SelectMethod(method enums.PaymentMethod) error {
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", method))
	}
	for _, option := range f.PaymentOptions() {
		if option.Method == method && option.Disabled {
			return pkgerrors.New(pkgerrors.CodeValidation, option.Reason)
		}
	}
	f.method = method
	return nil
}

// PlaceOrder submits the checkout and settles the payment. Cash on delivery
// completes on placement; the gateway path collects and verifies before the
// order counts as paid. The cart clears only after a fully settled order.
func (f *Flow) PlaceOrder(ctx context.Context, notes string) (types.OrderPlacement, error) {
	if f.cart.Cart().IsEmpty() {
		return types.OrderPlacement{}, f.rejectLocally("your cart is empty")
	}
	address, ok := f.addresses.Selected()
	if !ok {
		return types.OrderPlacement{}, f.rejectLocally("select a shipping address first")
	}
	if err := f.SelectMethod(f.method); err != nil {
		// The cart may have grown past the COD limit since the method was
		// chosen.
		f.bannerError(err, "payment method unavailable")
		return types.OrderPlacement{}, err
	}

	placement, err := f.api.PlaceOrder(ctx, types.PlaceOrderRequest{
		ShippingAddress: address,
		PaymentMethod:   f.method,
		OrderNotes:      notes,
		TotalAmount:     f.cart.Totals().Total,
	})
	if err != nil {
		f.bannerError(err, "failed to place order")
		return types.OrderPlacement{}, err
	}
	ctx = f.logger.WithOrderID(ctx, placement.OrderID)
	f.logger.Info(ctx, "order placed")

	if f.method == enums.PaymentMethodCOD {
		f.finish(ctx, placement)
		return placement, nil
	}
	if f.gateway == nil {
		return placement, pkgerrors.New(pkgerrors.CodePayment, "no payment gateway configured")
	}

	result, err := f.gateway.Collect(ctx, placement)
	if err != nil {
		f.bannerError(err, "payment was not completed")
		return placement, err
	}
	err = f.api.VerifyPayment(ctx, types.PaymentVerification{
		RazorpayPaymentID: result.PaymentID,
		RazorpayOrderID:   result.OrderID,
		RazorpaySignature: result.Signature,
		OrderID:           placement.OrderID,
	})
	if err != nil {
		f.bannerError(err, "payment verification failed")
		return placement, err
	}

	f.finish(ctx, placement)
	return placement, nil
}

// finish clears the cart and posts the success banner. A failed clear is
// logged, not surfaced: the order is already settled.
func (f *Flow) finish(ctx context.Context, placement types.OrderPlacement) {
	if err := f.cart.Clear(ctx); err != nil {
		f.logger.Warn(f.logger.WithField(ctx, "error", err.Error()), "cart clear failed after settled order")
	}
	f.banners.Post(notify.KindSuccess, fmt.Sprintf("Order %s placed", placement.OrderNumber), f.bannerTTL)
}

func (f *Flow) rejectLocally(message string) error {
	f.banners.Post(notify.KindError, message, f.bannerTTL)
	return pkgerrors.New(pkgerrors.CodeValidation, message)
}

func (f *Flow) bannerError(err error, fallback string) {
	message := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	f.banners.Post(notify.KindError, message, f.bannerTTL)
}
