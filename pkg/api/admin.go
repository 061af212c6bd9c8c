package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spiceshop/storefront-go/pkg/types"
)

// AdminLogin opens a back-office session. The returned token is handed to
// the session store; this client only reads it back through TokenSource.
func (c *Client) AdminLogin(ctx context.Context, creds types.Credentials) (types.AdminSession, error) {
	var session types.AdminSession
	err := c.do(ctx, http.MethodPost, "/api/admin/login", creds, &session)
	return session, err
}

// AdminProfile fetches the operator's account.
func (c *Client) AdminProfile(ctx context.Context) (types.AdminProfile, error) {
	var profile types.AdminProfile
	err := c.do(ctx, http.MethodGet, "/api/admin/profile", nil, &profile, asAdmin())
	return profile, err
}

// AdminUpdateProfile saves operator account edits.
func (c *Client) AdminUpdateProfile(ctx context.Context, profile types.AdminProfile) (types.AdminProfile, error) {
	var updated types.AdminProfile
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/update-profile/%d", profile.ID), profile, &updated, asAdmin())
	return updated, err
}

// AdminChangePassword updates the operator's password while logged in.
func (c *Client) AdminChangePassword(ctx context.Context, change types.PasswordChange) error {
	return c.do(ctx, http.MethodPost, "/api/admin/change-password", change, nil, asAdmin())
}

// RequestPasswordReset is step one of the recovery flow.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/admin/forgot-password/request", body, nil)
}

// VerifySecretKey is step two: the operator proves the recovery credential.
func (c *Client) VerifySecretKey(ctx context.Context, email, secretKey string) error {
	body := map[string]string{"email": email, "secretKey": secretKey}
	return c.do(ctx, http.MethodPost, "/api/admin/forgot-password/verify-key", body, nil)
}

// ResetAdminPassword is step three: set the new password. Complexity is
// checked client-side before this is ever called.
func (c *Client) ResetAdminPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{"email": email, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/admin/forgot-password/reset", body, nil)
}
