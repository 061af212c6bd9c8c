package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses() {
		got, err := ParseOrderStatus(s.String())
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q) error = %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip mismatch: %s != %s", got, s)
		}
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatalf("lowercase status should be rejected")
	}
	if _, err := ParseOrderStatus(""); err == nil {
		t.Fatalf("empty status should be rejected")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusPlaced.IsTerminal() || OrderStatusShipped.IsTerminal() {
		t.Fatalf("open statuses must not be terminal")
	}
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatalf("delivered and cancelled are terminal")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	if _, err := ParsePaymentMethod("razorpay"); err != nil {
		t.Fatalf("razorpay should parse: %v", err)
	}
	if _, err := ParsePaymentMethod("cod"); err != nil {
		t.Fatalf("cod should parse: %v", err)
	}
	if _, err := ParsePaymentMethod("paypal"); err == nil {
		t.Fatalf("unknown method should be rejected")
	}
}

func TestStockLevelForQuantity(t *testing.T) {
	tests := []struct {
		qty   int
		level StockLevel
		label string
	}{
		{100, StockLevelIn, "In Stock"},
		{11, StockLevelIn, "In Stock"},
		{10, StockLevelLow, "Low Stock"},
		{1, StockLevelLow, "Low Stock"},
		{0, StockLevelOut, "Out of Stock"},
		{-3, StockLevelOut, "Out of Stock"},
	}
	for _, tt := range tests {
		got := StockLevelForQuantity(tt.qty)
		if got != tt.level {
			t.Fatalf("qty %d expected %s got %s", tt.qty, tt.level, got)
		}
		if got.Label() != tt.label {
			t.Fatalf("qty %d expected label %q got %q", tt.qty, tt.label, got.Label())
		}
	}
}
