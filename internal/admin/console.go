// Package admin is the back-office surface: operator sessions persisted on
// disk, the operator profile, password recovery, and the customer roster.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/spiceshop/storefront-go/internal/listview"
	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/internal/session"
	"github.com/spiceshop/storefront-go/internal/wizard"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
	"github.com/spiceshop/storefront-go/pkg/validate"
)

type backend interface {
	AdminLogin(ctx context.Context, creds types.Credentials) (types.AdminSession, error)
	AdminProfile(ctx context.Context) (types.AdminProfile, error)
	AdminUpdateProfile(ctx context.Context, profile types.AdminProfile) (types.AdminProfile, error)
	AdminChangePassword(ctx context.Context, change types.PasswordChange) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifySecretKey(ctx context.Context, email, secretKey string) error
	ResetAdminPassword(ctx context.Context, email, newPassword string) error
	UserCount(ctx context.Context) (int, error)
	AllUsers(ctx context.Context) ([]types.UserProfile, error)
}

// Console is the operator's session-aware entry point.
type Console struct {
	api       backend
	sessions  *session.Store
	banners   *notify.Center
	bannerTTL time.Duration
	logger    *logger.Logger
}

// NewConsole builds the back-office console.
func NewConsole(api backend, sessions *session.Store, banners *notify.Center, bannerTTL time.Duration, logg *logger.Logger) (*Console, error) {
	if api == nil {
		return nil, fmt.Errorf("admin backend required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if banners == nil {
		return nil, fmt.Errorf("banner center required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Console{api: api, sessions: sessions, banners: banners, bannerTTL: bannerTTL, logger: logg}, nil
}

// Login opens an operator session and persists the token so later
// invocations stay signed in until the token expires.
func (c *Console) Login(ctx context.Context, creds types.Credentials) (types.AdminProfile, error) {
	if err := validate.Struct(creds); err != nil {
		c.bannerError(err, "invalid credentials")
		return types.AdminProfile{}, err
	}
	adminSession, err := c.api.AdminLogin(ctx, creds)
	if err != nil {
		c.bannerError(err, "login failed")
		return types.AdminProfile{}, err
	}
	if err := c.sessions.SetAdmin(ctx, adminSession.Token, adminSession.Admin.Email); err != nil {
		return types.AdminProfile{}, err
	}
	c.logger.Info(ctx, "admin logged in")
	return adminSession.Admin, nil
}

// Logout drops the persisted session.
func (c *Console) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}

// SignedIn reports whether a usable session token is on disk.
func (c *Console) SignedIn() bool {
	return c.sessions.HasAdminSession()
}

// Profile fetches the operator's account.
func (c *Console) Profile(ctx context.Context) (types.AdminProfile, error) {
	return c.api.AdminProfile(ctx)
}

// UpdateProfile validates and saves operator account edits.
func (c *Console) UpdateProfile(ctx context.Context, profile types.AdminProfile) (types.AdminProfile, error) {
	if err := validate.Struct(profile); err != nil {
		c.bannerError(err, "invalid profile")
		return types.AdminProfile{}, err
	}
	updated, err := c.api.AdminUpdateProfile(ctx, profile)
	if err != nil {
		c.bannerError(err, "failed to update profile")
		return types.AdminProfile{}, err
	}
	c.banners.Post(notify.KindSuccess, "Profile updated", c.bannerTTL)
	return updated, nil
}

// ChangePassword updates the password while signed in. The new password
// must clear the same complexity bar as the recovery flow, locally, before
// any request.
func (c *Console) ChangePassword(ctx context.Context, change types.PasswordChange) error {
	if err := validate.Struct(change); err != nil {
		c.bannerError(err, "invalid password change")
		return err
	}
	if err := wizard.CheckPasswordStrength(change.NewPassword); err != nil {
		c.bannerError(err, "weak password")
		return err
	}
	if err := c.api.AdminChangePassword(ctx, change); err != nil {
		c.bannerError(err, "failed to change password")
		return err
	}
	c.banners.Post(notify.KindSuccess, "Password changed", c.bannerTTL)
	return nil
}

// StartPasswordReset opens the three-step recovery wizard.
func (c *Console) StartPasswordReset() *wizard.PasswordResetFlow {
	return wizard.NewPasswordResetFlow(c.api)
}

// CustomerCount returns the dashboard headline number.
func (c *Console) CustomerCount(ctx context.Context) (int, error) {
	return c.api.UserCount(ctx)
}

// Customers fetches the full roster into a locally filtered, paged view.
func (c *Console) Customers(ctx context.Context, pageSize int) (*Roster, error) {
	users, err := c.api.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &Roster{view: listview.New(users, pageSize)}, nil
}

func (c *Console) bannerError(err error, fallback string) {
	message := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	c.banners.Post(notify.KindError, message, c.bannerTTL)
}

// Roster is the customer table: searchable by name and email, paged
// client-side.
type Roster struct {
	view *listview.View[types.UserProfile]
}

// Search filters the roster and resets to page 1.
func (r *Roster) Search(query string) {
	r.view.SetFilters(
		listview.TextSearch(query, func(u types.UserProfile) []string {
			return []string{u.FirstName, u.LastName, u.Email}
		}),
	)
}

// Page returns the current window.
func (r *Roster) Page() []types.UserProfile { return r.view.Page() }

// PageIndex returns the 1-based current page.
func (r *Roster) PageIndex() int { return r.view.PageIndex() }

// TotalPages returns the page count over the filtered subset.
func (r *Roster) TotalPages() int { return r.view.TotalPages() }

// Verdict classifies an empty table for messaging.
func (r *Roster) Verdict() listview.Emptiness { return r.view.Verdict() }

// Next advances one page.
func (r *Roster) Next() { r.view.Next() }

// Prev steps back one page.
func (r *Roster) Prev() { r.view.Prev() }
