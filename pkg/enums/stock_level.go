package enums

// StockLevel is a display tier derived from a pack's stock quantity. It never
// feeds back into any mutation.
type StockLevel string

const (
	StockLevelIn  StockLevel = "in_stock"
	StockLevelLow StockLevel = "low_stock"
	StockLevelOut StockLevel = "out_of_stock"
)

// StockLevelForQuantity buckets a stock quantity: more than 10 is in stock,
// 1 through 10 is low, zero (or negative garbage) is out.
func StockLevelForQuantity(quantity int) StockLevel {
	switch {
	case quantity > 10:
		return StockLevelIn
	case quantity >= 1:
		return StockLevelLow
	default:
		return StockLevelOut
	}
}

// String implements fmt.Stringer.
func (s StockLevel) String() string {
	return string(s)
}

// Label returns the storefront display string for the tier.
func (s StockLevel) Label() string {
	switch s {
	case StockLevelIn:
		return "In Stock"
	case StockLevelLow:
		return "Low Stock"
	default:
		return "Out of Stock"
	}
}
