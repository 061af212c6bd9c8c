package wizard

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
)

type scriptedReset struct {
	requestErr error
	verifyErr  error
	resetErr   error
	calls      []string
}

func (s *scriptedReset) RequestPasswordReset(ctx context.Context, email string) error {
	s.calls = append(s.calls, "request")
	return s.requestErr
}

func (s *scriptedReset) VerifySecretKey(ctx context.Context, email, secretKey string) error {
	s.calls = append(s.calls, "verify")
	return s.verifyErr
}

func (s *scriptedReset) ResetAdminPassword(ctx context.Context, email, newPassword string) error {
	s.calls = append(s.calls, "reset")
	return s.resetErr
}

func TestPasswordResetHappyPath(t *testing.T) {
	ctx := context.Background()
	api := &scriptedReset{}
	flow := NewPasswordResetFlow(api)

	if err := flow.RequestReset(ctx, "admin@spiceshop.example"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	if err := flow.VerifyKey(ctx, "recovery-key"); err != nil {
		t.Fatalf("VerifyKey: %v", err)
	}
	if err := flow.SetNewPassword(ctx, "Str0ng!pw", "Str0ng!pw"); err != nil {
		t.Fatalf("SetNewPassword: %v", err)
	}
	if flow.Step() != StepResetDone {
		t.Fatalf("expected done, got %s", flow.Step())
	}
}

func TestSetPasswordUnreachableWithoutVerifiedKey(t *testing.T) {
	ctx := context.Background()
	flow := NewPasswordResetFlow(&scriptedReset{})
	err := flow.SetNewPassword(ctx, "Str0ng!pw", "Str0ng!pw")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestWeakOrMismatchedPasswordNeverReachesBackend(t *testing.T) {
	ctx := context.Background()
	api := &scriptedReset{}
	flow := NewPasswordResetFlow(api)
	if err := flow.RequestReset(ctx, "admin@spiceshop.example"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	if err := flow.VerifyKey(ctx, "recovery-key"); err != nil {
		t.Fatalf("VerifyKey: %v", err)
	}
	before := len(api.calls)

	err := flow.SetNewPassword(ctx, "Str0ng!pw", "different")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("mismatch should be validation, got %v", err)
	}
	err = flow.SetNewPassword(ctx, "weak", "weak")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("weak password should be validation, got %v", err)
	}
	if len(api.calls) != before {
		t.Fatalf("local checks must not produce requests: %v", api.calls[before:])
	}
	if flow.Step() != StepSetNewPassword {
		t.Fatalf("local failures must keep the step, got %s", flow.Step())
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		wantMsg  string
	}{
		{"Ab1!", "password must be at least 8 characters"},
		{"lower1!under", "password needs an uppercase letter"},
		{"UPPER1!SHOUT", "password needs a lowercase letter"},
		{"NoDigits!", "password needs a digit"},
		{"NoSpecial1", "password needs one of !@#$%^&*()"},
		{"Str0ng!pw", ""},
		{"A1b!A1b!", ""},
	}
	for _, tc := range cases {
		err := CheckPasswordStrength(tc.password)
		if tc.wantMsg == "" {
			if err != nil {
				t.Fatalf("%q: unexpected %v", tc.password, err)
			}
			continue
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Message() != tc.wantMsg {
			t.Fatalf("%q: want %q, got %v", tc.password, tc.wantMsg, err)
		}
	}
}
