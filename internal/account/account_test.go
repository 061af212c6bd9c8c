package account

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/spiceshop/storefront-go/internal/notify"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

type fakeAccountBackend struct {
	loginErr  error
	updateErr error
	profile   types.UserProfile
	calls     []string
}

func (f *fakeAccountBackend) Login(ctx context.Context, creds types.Credentials) error {
	f.calls = append(f.calls, "login")
	return f.loginErr
}

func (f *fakeAccountBackend) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	return nil
}

func (f *fakeAccountBackend) CheckSession(ctx context.Context) (types.SessionStatus, error) {
	return types.SessionStatus{Authenticated: true, Email: f.profile.Email}, nil
}

func (f *fakeAccountBackend) SendOTP(ctx context.Context, email string) error          { return nil }
func (f *fakeAccountBackend) VerifyOTP(ctx context.Context, email, otp string) error   { return nil }
func (f *fakeAccountBackend) CompleteRegistration(ctx context.Context, req types.RegistrationCompletion) error {
	return nil
}

func (f *fakeAccountBackend) Me(ctx context.Context) (types.UserProfile, error) {
	return f.profile, nil
}

func (f *fakeAccountBackend) UpdateMe(ctx context.Context, profile types.UserProfile) (types.UserProfile, error) {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return types.UserProfile{}, f.updateErr
	}
	f.profile = profile
	return profile, nil
}

func (f *fakeAccountBackend) ListAddresses(ctx context.Context) ([]types.Address, error) {
	return nil, nil
}

func (f *fakeAccountBackend) CreateAddress(ctx context.Context, addr types.Address) (types.Address, error) {
	return addr, nil
}

func (f *fakeAccountBackend) UpdateAddress(ctx context.Context, addr types.Address) (types.Address, error) {
	return addr, nil
}

func (f *fakeAccountBackend) DeleteAddress(ctx context.Context, id int64) error { return nil }

func newService(t *testing.T, api *fakeAccountBackend) (*Service, *notify.Center) {
	t.Helper()
	banners := notify.NewCenter()
	svc, err := NewService(api, banners, 5*time.Second, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, banners
}

func TestLoginValidatesLocally(t *testing.T) {
	api := &fakeAccountBackend{}
	svc, banners := newService(t, api)

	err := svc.Login(context.Background(), types.Credentials{Email: "not-an-email", Password: "x"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("invalid form must not reach the backend: %v", api.calls)
	}
	if len(banners.Active()) != 1 {
		t.Fatalf("expected a banner")
	}
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	api := &fakeAccountBackend{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}
	svc, banners := newService(t, api)

	err := svc.Login(context.Background(), types.Credentials{Email: "a@b.example", Password: "wrong"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	active := banners.Active()
	if len(active) != 1 || active[0].Text != "invalid email or password" {
		t.Fatalf("expected the backend's message, got %+v", active)
	}
}

func TestUpdateProfileRoundTrip(t *testing.T) {
	api := &fakeAccountBackend{profile: types.UserProfile{
		ID: 1, FirstName: "Asha", LastName: "Nair", Email: "asha@b.example",
	}}
	svc, banners := newService(t, api)

	updated, err := svc.UpdateProfile(context.Background(), types.UserProfile{
		ID: 1, FirstName: "Asha", LastName: "Menon", Email: "asha@b.example",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.LastName != "Menon" {
		t.Fatalf("server echo must come back: %+v", updated)
	}
	active := banners.Active()
	if len(active) != 1 || active[0].Kind != notify.KindSuccess {
		t.Fatalf("expected success banner, got %+v", active)
	}
}

func TestUpdateProfileRejectsInvalidLocally(t *testing.T) {
	api := &fakeAccountBackend{}
	svc, _ := newService(t, api)

	_, err := svc.UpdateProfile(context.Background(), types.UserProfile{FirstName: "Asha"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("invalid profile must not reach the backend: %v", api.calls)
	}
}

func TestRegistrationFlowUsesAccountBackend(t *testing.T) {
	svc, _ := newService(t, &fakeAccountBackend{})
	flow := svc.StartRegistration()
	ctx := context.Background()

	if err := flow.SubmitEmail(ctx, "new@b.example"); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}
	if err := flow.SubmitOTP(ctx, "123456"); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}
	if err := flow.Complete(ctx, types.RegistrationCompletion{
		FirstName: "New", LastName: "Customer", Password: "pw",
	}, "pw"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}
