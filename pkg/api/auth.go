package api

import (
	"context"
	"net/http"

	"github.com/spiceshop/storefront-go/pkg/types"
)

// Login opens a customer session. The backend sets a session cookie which
// the client's jar carries from then on.
func (c *Client) Login(ctx context.Context, creds types.Credentials) error {
	return c.do(ctx, http.MethodPost, "/api/auth/login", creds, nil)
}

// Logout ends the customer session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// CheckSession asks the backend whether the cookie still names a live
// session. The client never inspects the cookie itself.
func (c *Client) CheckSession(ctx context.Context) (types.SessionStatus, error) {
	var status types.SessionStatus
	err := c.do(ctx, http.MethodGet, "/api/auth/check-session", nil, &status)
	return status, err
}

// SendOTP starts registration step one by mailing a code to the address.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/send-otp", body, nil)
}

// VerifyOTP is registration step two. Success is the sole gate to step
// three.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, http.MethodPost, "/api/auth/register/verify-otp", body, nil)
}

// CompleteRegistration finishes step three with the profile and password.
func (c *Client) CompleteRegistration(ctx context.Context, req types.RegistrationCompletion) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register/complete", req, nil)
}
