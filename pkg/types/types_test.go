package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartCloneIsIndependent(t *testing.T) {
	cart := Cart{
		ID: 7,
		Items: []CartItem{
			{ID: 1, SpiceName: "Malabar Pepper", Quantity: 2, Price: decimal.NewFromInt(200)},
		},
		Subtotal: decimal.NewFromInt(400),
	}
	snap := cart.Clone()
	cart.Items[0].Quantity = 9

	if snap.Items[0].Quantity != 2 {
		t.Fatalf("snapshot mutated alongside original: %d", snap.Items[0].Quantity)
	}
}

func TestCartItemLineTotal(t *testing.T) {
	item := CartItem{Price: decimal.RequireFromString("149.50"), Quantity: 3}
	if got := item.LineTotal(); !got.Equal(decimal.RequireFromString("448.50")) {
		t.Fatalf("unexpected line total %s", got)
	}
}

func TestCartDecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 12,
		"items": [{
			"id": 3, "spiceId": 5, "spiceName": "Cardamom",
			"qualityClass": "Premium", "packWeightInGrams": 100,
			"price": 450.00, "quantity": 1, "maxQuantityAvailable": 14,
			"imageUrl": "https://img.example/cardamom.jpg"
		}],
		"subtotal": 450.00, "shippingCost": 50.00, "total": 500.00
	}`
	var cart Cart
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].MaxQuantityAvailable != 14 {
		t.Fatalf("unexpected decode %+v", cart)
	}
	if !cart.Total.Equal(cart.Subtotal.Add(cart.ShippingCost)) {
		t.Fatalf("total invariant broken in fixture")
	}
}

func TestSpiceTotalStock(t *testing.T) {
	s := Spice{Variants: []Variant{
		{Packs: []Pack{{StockQuantity: 4}, {StockQuantity: 6}}},
		{Packs: []Pack{{StockQuantity: 10}}},
	}}
	if got := s.TotalStock(); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
}

func TestMaskedSecretKey(t *testing.T) {
	a := AdminProfile{SecretKey: "SK-93A7F2B1"}
	masked := a.MaskedSecretKey()
	if masked != "*******F2B1" {
		t.Fatalf("unexpected mask %q", masked)
	}
	short := AdminProfile{SecretKey: "abc"}
	if short.MaskedSecretKey() != "****" {
		t.Fatalf("short keys must be fully masked")
	}
}

func TestAddressDisplayName(t *testing.T) {
	a := Address{FirstName: "Asha", LastName: "Nair"}
	if a.DisplayName() != "Asha Nair" {
		t.Fatalf("unexpected display name %q", a.DisplayName())
	}
	if (Address{FirstName: "Asha"}).DisplayName() != "Asha" {
		t.Fatalf("missing last name should not leave a trailing space")
	}
}
