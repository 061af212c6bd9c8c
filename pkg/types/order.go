package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/pkg/enums"
)

// Order as rendered in history and admin views. Every field except
// OrderStatus is read-only on the client; status moves through the admin
// single-field PATCH.
type Order struct {
	ID            int64               `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	OrderDate     time.Time           `json:"orderDate"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	ShippingCost  decimal.Decimal     `json:"shippingCost"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	OrderStatus   enums.OrderStatus   `json:"orderStatus"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	PaymentMethod string              `json:"paymentMethod"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	ShippingAddr  Address             `json:"shippingAddress"`
	OrderNotes    string              `json:"orderNotes"`
	Items         []OrderItem         `json:"items"`
}

type OrderItem struct {
	ID                int64           `json:"orderItemId"`
	SpiceName         string          `json:"spiceName"`
	QualityClass      string          `json:"qualityClass"`
	PackWeightInGrams int             `json:"packWeightInGrams"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Quantity          int             `json:"quantity"`
	ImageURL          string          `json:"imageUrl"`
}

// PlaceOrderRequest is sent to POST /api/orders/place. The backend
// recalculates every amount; TotalAmount travels for display parity only.
type PlaceOrderRequest struct {
	ShippingAddress Address             `json:"shippingAddress" validate:"required"`
	PaymentMethod   enums.PaymentMethod `json:"paymentMethod" validate:"required"`
	OrderNotes      string              `json:"orderNotes"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
}

// OrderPlacement is the backend's answer to a place request. RazorpayOrderID
// is set only for gateway payments.
type OrderPlacement struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message"`
	OrderID         int64           `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	RazorpayOrderID string          `json:"razorpayOrderId"`
}

// PaymentVerification hands the gateway's signed result to the backend for
// signature verification; the client treats the signature as opaque.
type PaymentVerification struct {
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpayOrderID   string `json:"razorpayOrderId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature" validate:"required"`
	OrderID           int64  `json:"orderId" validate:"required"`
}

// PaymentVerificationResult reports whether the backend accepted the
// signature.
type PaymentVerificationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusUpdateRequest is the admin's single-field order status PATCH body.
type StatusUpdateRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}
