package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/pkg/types"
)

// ProductQuery is the server-side filter set for the public shop listing.
// The admin lists deliberately skip it and filter client-side instead.
type ProductQuery struct {
	Page         int
	Limit        int
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	QualityClass string
	InStock      *bool
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", q.MaxPrice.String())
	}
	if q.QualityClass != "" {
		v.Set("qualityClass", q.QualityClass)
	}
	if q.InStock != nil {
		v.Set("inStock", strconv.FormatBool(*q.InStock))
	}
	return v
}

// ListProducts queries the public, paginated shop catalog.
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (types.ProductPage, error) {
	var page types.ProductPage
	err := c.do(ctx, http.MethodGet, "/api/products", nil, &page, withQuery(query.values()))
	return page, err
}

// ListSpices returns the full catalog in one response, for the admin list.
func (c *Client) ListSpices(ctx context.Context) ([]types.Spice, error) {
	var spices []types.Spice
	err := c.do(ctx, http.MethodGet, "/api/spices", nil, &spices)
	return spices, err
}

// GetSpice fetches one product with its full variant/pack tree.
func (c *Client) GetSpice(ctx context.Context, id int64) (types.Spice, error) {
	var spice types.Spice
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/spices/%d", id), nil, &spice)
	return spice, err
}

// GetRelatedSpices returns products shown alongside a detail page.
func (c *Client) GetRelatedSpices(ctx context.Context, id int64) ([]types.Spice, error) {
	var spices []types.Spice
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/spices/%d/related", id), nil, &spices)
	return spices, err
}

// ListQualityClasses returns the quality classes known to the catalog, used
// to populate the shop filter dropdown.
func (c *Client) ListQualityClasses(ctx context.Context) ([]string, error) {
	var classes []string
	err := c.do(ctx, http.MethodGet, "/api/quality-classes", nil, &classes)
	return classes, err
}

// CreateSpice adds a catalog product.
func (c *Client) CreateSpice(ctx context.Context, req types.SpiceRequest) (types.Spice, error) {
	var spice types.Spice
	err := c.do(ctx, http.MethodPost, "/api/spices", req, &spice, asAdmin())
	return spice, err
}

// UpdateSpice replaces a catalog product.
func (c *Client) UpdateSpice(ctx context.Context, id int64, req types.SpiceRequest) (types.Spice, error) {
	var spice types.Spice
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/spices/%d", id), req, &spice, asAdmin())
	return spice, err
}

// DeleteSpice removes a catalog product.
func (c *Client) DeleteSpice(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/spices/%d", id), nil, nil, asAdmin())
}

// SetSpiceAvailability flips the storefront visibility toggle.
func (c *Client) SetSpiceAvailability(ctx context.Context, id int64, available bool) error {
	body := map[string]bool{"isAvailable": available}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/spices/%d/availability", id), body, nil, asAdmin())
}
