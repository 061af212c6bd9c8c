package api

import (
	"context"
	"net/http"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// VerifyPayment hands the Razorpay result to the backend, which checks the
// signature. A success=false body is a payment failure even on HTTP 200.
func (c *Client) VerifyPayment(ctx context.Context, req types.PaymentVerification) error {
	var result types.PaymentVerificationResult
	if err := c.do(ctx, http.MethodPost, "/api/payments/verify", req, &result); err != nil {
		return err
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "payment verification failed"
		}
		return pkgerrors.New(pkgerrors.CodePayment, message)
	}
	return nil
}
