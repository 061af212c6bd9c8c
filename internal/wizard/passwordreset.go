package wizard

import (
	"context"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
)

// ResetStep names the gates of the admin password recovery flow.
type ResetStep string

const (
	StepRequestReset   ResetStep = "request-reset"
	StepVerifyKey      ResetStep = "verify-key"
	StepSetNewPassword ResetStep = "set-new-password"
	StepResetDone      ResetStep = "done"
)

type resetBackend interface {
	RequestPasswordReset(ctx context.Context, email string) error
	VerifySecretKey(ctx context.Context, email, secretKey string) error
	ResetAdminPassword(ctx context.Context, email, newPassword string) error
}

// PasswordResetFlow walks request -> verify-key -> set-new-password. The
// final step refuses to even attempt the request until the confirmation
// matches and the complexity policy passes.
type PasswordResetFlow struct {
	api         resetBackend
	step        ResetStep
	email       string
	keyVerified bool
	inlineError string
}

// NewPasswordResetFlow starts at the request step.
func NewPasswordResetFlow(api resetBackend) *PasswordResetFlow {
	return &PasswordResetFlow{api: api, step: StepRequestReset}
}

// Step reports the current step.
func (f *PasswordResetFlow) Step() ResetStep {
	return f.step
}

// InlineError returns the last failed step's message.
func (f *PasswordResetFlow) InlineError() string {
	return f.inlineError
}

// RequestReset runs step one.
func (f *PasswordResetFlow) RequestReset(ctx context.Context, email string) error {
	if f.step != StepRequestReset {
		return invalidTransition("password-reset", string(f.step), "request reset")
	}
	if err := f.api.RequestPasswordReset(ctx, email); err != nil {
		f.fail(err)
		return err
	}
	f.email = email
	f.step = StepVerifyKey
	f.inlineError = ""
	return nil
}

// VerifyKey runs step two with the recovery credential.
func (f *PasswordResetFlow) VerifyKey(ctx context.Context, secretKey string) error {
	if f.step != StepVerifyKey {
		return invalidTransition("password-reset", string(f.step), "verify key")
	}
	if err := f.api.VerifySecretKey(ctx, f.email, secretKey); err != nil {
		f.fail(err)
		return err
	}
	f.keyVerified = true
	f.step = StepSetNewPassword
	f.inlineError = ""
	return nil
}

// SetNewPassword runs step three. The confirmation match and strength
// policy are checked locally first; a failing password never produces a
// request.
func (f *PasswordResetFlow) SetNewPassword(ctx context.Context, newPassword, confirmPassword string) error {
	if f.step != StepSetNewPassword {
		return invalidTransition("password-reset", string(f.step), "set password")
	}
	if !f.keyVerified {
		return invalidTransition("password-reset", string(f.step), "set password without key verification")
	}
	if newPassword != confirmPassword {
		err := pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
		f.inlineError = err.Message()
		return err
	}
	if err := CheckPasswordStrength(newPassword); err != nil {
		f.fail(err)
		return err
	}
	if err := f.api.ResetAdminPassword(ctx, f.email, newPassword); err != nil {
		f.fail(err)
		return err
	}
	f.step = StepResetDone
	f.inlineError = ""
	return nil
}

func (f *PasswordResetFlow) fail(err error) {
	if typed := pkgerrors.As(err); typed != nil {
		f.inlineError = typed.Message()
		return
	}
	f.inlineError = err.Error()
}
