package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/internal/optimistic"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// backend is the slice of the API client the cart needs.
type backend interface {
	GetCart(ctx context.Context) (types.Cart, error)
	AddCartItem(ctx context.Context, req types.AddToCartRequest) (types.Cart, error)
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
}

// Store is the customer's cart view: optimistic quantity and removal
// mutations with exact rollback, totals recomputed on every local change,
// and the backend's response treated as authoritative on success.
type Store struct {
	api       backend
	state     *optimistic.Store[types.Cart]
	pricing   Pricing
	banners   *notify.Center
	bannerTTL time.Duration
	logger    *logger.Logger
}

// NewStore builds the cart store around the API client slice.
func NewStore(api backend, pricing Pricing, banners *notify.Center, bannerTTL time.Duration, logg *logger.Logger) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("cart backend required")
	}
	if banners == nil {
		return nil, fmt.Errorf("banner center required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{
		api:       api,
		state:     optimistic.NewStore(types.Cart{}, types.Cart.Clone),
		pricing:   pricing,
		banners:   banners,
		bannerTTL: bannerTTL,
		logger:    logg,
	}, nil
}

// Refresh loads the authoritative cart.
func (s *Store) Refresh(ctx context.Context) error {
	cart, err := s.api.GetCart(ctx)
	if err != nil {
		return err
	}
	s.state.Set(cart)
	return nil
}

// Cart returns the current, possibly provisional, cart.
func (s *Store) Cart() types.Cart {
	return s.state.Get()
}

// Totals recomputes the money summary for the current cart.
func (s *Store) Totals() Totals {
	return s.pricing.Compute(s.state.Get().Items)
}

// UpdateQuantity sets a line's quantity optimistically. Quantities outside
// [1, maxQuantityAvailable] are rejected before any request goes out: no
// provisional state, no network, just a local banner.
func (s *Store) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	item, ok := s.findItem(itemID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}
	if quantity < 1 {
		return s.rejectLocally("quantity must be at least 1")
	}
	if quantity > item.MaxQuantityAvailable {
		return s.rejectLocally(fmt.Sprintf("only %d available in stock", item.MaxQuantityAvailable))
	}

	err := s.state.Mutate(ctx,
		func(c types.Cart) types.Cart {
			for i := range c.Items {
				if c.Items[i].ID == itemID {
					c.Items[i].Quantity = quantity
				}
			}
			s.pricing.Compute(c.Items).applyTo(&c)
			return c
		},
		func(ctx context.Context) error {
			return s.api.UpdateCartItem(ctx, itemID, quantity)
		},
		s.api.GetCart,
	)
	if err != nil {
		s.bannerError(err, "failed to update quantity")
		return err
	}
	return nil
}

// RemoveItem drops a line optimistically.
func (s *Store) RemoveItem(ctx context.Context, itemID int64) error {
	if _, ok := s.findItem(itemID); !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}

	err := s.state.Mutate(ctx,
		func(c types.Cart) types.Cart {
			kept := c.Items[:0]
			for _, item := range c.Items {
				if item.ID != itemID {
					kept = append(kept, item)
				}
			}
			c.Items = kept
			s.pricing.Compute(c.Items).applyTo(&c)
			return c
		},
		func(ctx context.Context) error {
			return s.api.RemoveCartItem(ctx, itemID)
		},
		s.api.GetCart,
	)
	if err != nil {
		s.bannerError(err, "failed to remove item")
		return err
	}
	s.banners.Post(notify.KindSuccess, "Item removed from cart", s.bannerTTL)
	return nil
}

// AddItem is not optimistic: there is no local line to show until the
// backend prices the pack. The response body is the new cart.
func (s *Store) AddItem(ctx context.Context, req types.AddToCartRequest) error {
	if req.Quantity < 1 {
		return s.rejectLocally("quantity must be at least 1")
	}
	cart, err := s.api.AddCartItem(ctx, req)
	if err != nil {
		s.bannerError(err, "failed to add item")
		return err
	}
	s.state.Set(cart)
	s.banners.Post(notify.KindSuccess, "Added to cart", s.bannerTTL)
	return nil
}

// Clear empties the cart after a successful order placement.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.api.ClearCart(ctx); err != nil {
		s.bannerError(err, "failed to clear cart")
		return err
	}
	s.state.Set(types.Cart{})
	return nil
}

func (s *Store) findItem(itemID int64) (types.CartItem, bool) {
	for _, item := range s.state.Get().Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return types.CartItem{}, false
}

func (s *Store) rejectLocally(message string) error {
	s.banners.Post(notify.KindError, message, s.bannerTTL)
	return pkgerrors.New(pkgerrors.CodeValidation, message)
}

func (s *Store) bannerError(err error, fallback string) {
	message := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	s.banners.Post(notify.KindError, message, s.bannerTTL)
}
