// Package account is the customer side of identity: sign in and out, the
// three-step registration, the profile page, and the saved address book.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/internal/wizard"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
	"github.com/spiceshop/storefront-go/pkg/validate"
)

type backend interface {
	Login(ctx context.Context, creds types.Credentials) error
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) (types.SessionStatus, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	CompleteRegistration(ctx context.Context, req types.RegistrationCompletion) error
	Me(ctx context.Context) (types.UserProfile, error)
	UpdateMe(ctx context.Context, profile types.UserProfile) (types.UserProfile, error)
	ListAddresses(ctx context.Context) ([]types.Address, error)
	CreateAddress(ctx context.Context, addr types.Address) (types.Address, error)
	UpdateAddress(ctx context.Context, addr types.Address) (types.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// Service is the customer account surface.
type Service struct {
	api       backend
	banners   *notify.Center
	bannerTTL time.Duration
	logger    *logger.Logger
}

// NewService builds the account service.
func NewService(api backend, banners *notify.Center, bannerTTL time.Duration, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("account backend required")
	}
	if banners == nil {
		return nil, fmt.Errorf("banner center required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, banners: banners, bannerTTL: bannerTTL, logger: logg}, nil
}

// Login validates the credentials locally, then opens the session. The
// cookie jar inside the API client carries the session from here.
func (s *Service) Login(ctx context.Context, creds types.Credentials) error {
	if err := validate.Struct(creds); err != nil {
		s.bannerError(err, "invalid credentials")
		return err
	}
	if err := s.api.Login(ctx, creds); err != nil {
		s.bannerError(err, "login failed")
		return err
	}
	s.logger.Info(ctx, "customer logged in")
	return nil
}

// Logout ends the session. A dead backend still logs the customer out; the
// cookie is gone either way once the jar is dropped.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "server-side logout failed")
		return err
	}
	return nil
}

// Session asks the backend whether the cookie still names a live session.
func (s *Service) Session(ctx context.Context) (types.SessionStatus, error) {
	return s.api.CheckSession(ctx)
}

// StartRegistration opens a fresh three-step signup wizard.
func (s *Service) StartRegistration() *wizard.RegistrationFlow {
	return wizard.NewRegistrationFlow(s.api)
}

// Addresses opens the saved address book as a picker/editor flow.
func (s *Service) Addresses() *wizard.AddressFlow {
	return wizard.NewAddressFlow(s.api)
}

// Profile fetches the account page.
func (s *Service) Profile(ctx context.Context) (types.UserProfile, error) {
	return s.api.Me(ctx)
}

// UpdateProfile validates and saves profile edits. The server's echo is the
// new truth.
func (s *Service) UpdateProfile(ctx context.Context, profile types.UserProfile) (types.UserProfile, error) {
	if err := validate.Struct(profile); err != nil {
		s.bannerError(err, "invalid profile")
		return types.UserProfile{}, err
	}
	updated, err := s.api.UpdateMe(ctx, profile)
	if err != nil {
		s.bannerError(err, "failed to update profile")
		return types.UserProfile{}, err
	}
	s.banners.Post(notify.KindSuccess, "Profile updated", s.bannerTTL)
	return updated, nil
}

func (s *Service) bannerError(err error, fallback string) {
	message := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	s.banners.Post(notify.KindError, message, s.bannerTTL)
}
