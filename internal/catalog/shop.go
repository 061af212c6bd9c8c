// Package catalog covers both faces of the spice catalog: the customer shop
// listing, which trusts the backend's pagination, and the admin manager,
// which fetches everything once and filters locally.
package catalog

import (
	"context"
	"fmt"

	"github.com/spiceshop/storefront-go/pkg/api"
	"github.com/spiceshop/storefront-go/pkg/enums"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

type shopBackend interface {
	ListProducts(ctx context.Context, query api.ProductQuery) (types.ProductPage, error)
	GetSpice(ctx context.Context, id int64) (types.Spice, error)
	GetRelatedSpices(ctx context.Context, id int64) ([]types.Spice, error)
	ListQualityClasses(ctx context.Context) ([]string, error)
}

// Shop is the customer-facing catalog reader.
type Shop struct {
	api    shopBackend
	logger *logger.Logger
}

// NewShop builds the shop reader.
func NewShop(api shopBackend, logg *logger.Logger) (*Shop, error) {
	if api == nil {
		return nil, fmt.Errorf("catalog backend required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Shop{api: api, logger: logg}, nil
}

// Browse runs a server-side catalog query. Search, price bounds, quality
// class, and stock filters all travel in the query string; the response is
// already the requested page.
func (s *Shop) Browse(ctx context.Context, query api.ProductQuery) (types.ProductPage, error) {
	return s.api.ListProducts(ctx, query)
}

// QualityClasses lists the filter dropdown's options.
func (s *Shop) QualityClasses(ctx context.Context) ([]string, error) {
	return s.api.ListQualityClasses(ctx)
}

// Detail is one product page: the spice plus the related strip.
type Detail struct {
	Spice   types.Spice
	Related []types.Spice
}

// Detail fetches a product and its related spices. A failed related fetch
// degrades to an empty strip rather than failing the page.
func (s *Shop) Detail(ctx context.Context, id int64) (Detail, error) {
	spice, err := s.api.GetSpice(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	related, err := s.api.GetRelatedSpices(ctx, id)
	if err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "related spices unavailable")
		related = nil
	}
	return Detail{Spice: spice, Related: related}, nil
}

// PackStock buckets a pack's quantity into its display tier.
func PackStock(pack types.Pack) enums.StockLevel {
	return enums.StockLevelForQuantity(pack.StockQuantity)
}

// SpiceStock buckets a spice's total stock across all packs.
func SpiceStock(spice types.Spice) enums.StockLevel {
	return enums.StockLevelForQuantity(spice.TotalStock())
}
