package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spiceshop/storefront-go/pkg/types"
)

// Me fetches the logged-in customer's profile.
func (c *Client) Me(ctx context.Context) (types.UserProfile, error) {
	var profile types.UserProfile
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &profile)
	return profile, err
}

// UpdateMe saves profile edits.
func (c *Client) UpdateMe(ctx context.Context, profile types.UserProfile) (types.UserProfile, error) {
	var updated types.UserProfile
	err := c.do(ctx, http.MethodPut, "/api/users/me", profile, &updated)
	return updated, err
}

// ListAddresses returns the customer's saved delivery addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]types.Address, error) {
	var addresses []types.Address
	err := c.do(ctx, http.MethodGet, "/api/users/me/addresses", nil, &addresses)
	return addresses, err
}

// CreateAddress saves a new delivery address.
func (c *Client) CreateAddress(ctx context.Context, addr types.Address) (types.Address, error) {
	var created types.Address
	err := c.do(ctx, http.MethodPost, "/api/users/me/addresses", addr, &created)
	return created, err
}

// UpdateAddress edits a saved address.
func (c *Client) UpdateAddress(ctx context.Context, addr types.Address) (types.Address, error) {
	var updated types.Address
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/me/addresses/%d", addr.ID), addr, &updated)
	return updated, err
}

// DeleteAddress removes a saved address.
func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/me/addresses/%d", id), nil, nil)
}

// UserCount returns the registered customer total for the admin dashboard.
func (c *Client) UserCount(ctx context.Context) (int, error) {
	var payload struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users/count", nil, &payload, asAdmin())
	return payload.Count, err
}

// AllUsers lists every customer for the admin back office.
func (c *Client) AllUsers(ctx context.Context) ([]types.UserProfile, error) {
	var users []types.UserProfile
	err := c.do(ctx, http.MethodGet, "/api/users/all", nil, &users, asAdmin())
	return users, err
}
