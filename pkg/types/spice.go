package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Spice is a catalog product. A spice carries quality-class variants, each
// offering weight/price/stock packs.
type Spice struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Origin      string    `json:"origin"`
	Unit        string    `json:"unit"`
	IsAvailable bool      `json:"isAvailable"`
	ImageURLs   []string  `json:"imageUrls"`
	Variants    []Variant `json:"variants"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TotalStock sums stock across every pack of every variant.
func (s Spice) TotalStock() int {
	total := 0
	for _, v := range s.Variants {
		for _, p := range v.Packs {
			total += p.StockQuantity
		}
	}
	return total
}

type Variant struct {
	ID           int64  `json:"id"`
	QualityClass string `json:"qualityClass"`
	Packs        []Pack `json:"packs"`
}

type Pack struct {
	ID                int64           `json:"id"`
	PackWeightInGrams int             `json:"packWeightInGrams"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stockQuantity"`
}

// SpiceRequest is the admin create/update payload.
type SpiceRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Origin      string           `json:"origin"`
	Unit        string           `json:"unit" validate:"required"`
	IsAvailable bool             `json:"isAvailable"`
	ImageURLs   []string         `json:"imageUrls" validate:"dive,url"`
	Variants    []VariantRequest `json:"variants" validate:"required,min=1,dive"`
}

type VariantRequest struct {
	QualityClass string        `json:"qualityClass" validate:"required"`
	Packs        []PackRequest `json:"packs" validate:"required,min=1,dive"`
}

type PackRequest struct {
	PackWeightInGrams int             `json:"packWeightInGrams" validate:"required,min=1"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	StockQuantity     int             `json:"stockQuantity" validate:"min=0"`
}

// ProductPage is the paginated shop listing the backend returns for
// GET /api/products.
type ProductPage struct {
	Products   []Spice `json:"products"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
	TotalCount int     `json:"totalCount"`
}
