package wizard

import (
	"context"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// RegistrationStep names the three gates of account signup.
type RegistrationStep string

const (
	StepEmailEntry        RegistrationStep = "email-entry"
	StepOTPVerify         RegistrationStep = "otp-verify"
	StepProfileCompletion RegistrationStep = "profile-completion"
	StepRegistrationDone  RegistrationStep = "done"
)

type registrationBackend interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	CompleteRegistration(ctx context.Context, req types.RegistrationCompletion) error
}

// RegistrationFlow walks email -> OTP -> profile. Each step's server success
// is the sole gate to the next; going back to the email step discards the
// OTP state entirely.
type RegistrationFlow struct {
	api         registrationBackend
	step        RegistrationStep
	email       string
	otpVerified bool
	inlineError string
}

// NewRegistrationFlow starts at the email step.
func NewRegistrationFlow(api registrationBackend) *RegistrationFlow {
	return &RegistrationFlow{api: api, step: StepEmailEntry}
}

// Step reports the current step.
func (f *RegistrationFlow) Step() RegistrationStep {
	return f.step
}

// Email returns the address the flow is registering.
func (f *RegistrationFlow) Email() string {
	return f.email
}

// InlineError returns the last failed step's message; it clears on the next
// successful transition.
func (f *RegistrationFlow) InlineError() string {
	return f.inlineError
}

// SubmitEmail runs step one. On success the flow advances to OTP entry.
func (f *RegistrationFlow) SubmitEmail(ctx context.Context, email string) error {
	if f.step != StepEmailEntry {
		return invalidTransition("registration", string(f.step), "submit email")
	}
	if err := f.api.SendOTP(ctx, email); err != nil {
		f.fail(err)
		return err
	}
	f.email = email
	f.advance(StepOTPVerify)
	return nil
}

// SubmitOTP runs step two. Success unlocks profile completion.
func (f *RegistrationFlow) SubmitOTP(ctx context.Context, otp string) error {
	if f.step != StepOTPVerify {
		return invalidTransition("registration", string(f.step), "submit otp")
	}
	if err := f.api.VerifyOTP(ctx, f.email, otp); err != nil {
		f.fail(err)
		return err
	}
	f.otpVerified = true
	f.advance(StepProfileCompletion)
	return nil
}

// BackToEmail is the explicit backward transition from OTP entry. Any
// verified OTP is discarded; re-entering step one starts over.
func (f *RegistrationFlow) BackToEmail() error {
	if f.step != StepOTPVerify {
		return invalidTransition("registration", string(f.step), "go back to email")
	}
	f.otpVerified = false
	f.inlineError = ""
	f.step = StepEmailEntry
	return nil
}

// Complete runs step three. The OTP gate is re-checked here so the final
// step stays unreachable without a verified step two, no matter how the
// flow was driven.
func (f *RegistrationFlow) Complete(ctx context.Context, req types.RegistrationCompletion, confirmPassword string) error {
	if f.step != StepProfileCompletion {
		return invalidTransition("registration", string(f.step), "complete profile")
	}
	if !f.otpVerified {
		return invalidTransition("registration", string(f.step), "complete without otp verification")
	}
	if req.Password != confirmPassword {
		err := pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
		f.inlineError = err.Message()
		return err
	}
	req.Email = f.email
	if err := f.api.CompleteRegistration(ctx, req); err != nil {
		f.fail(err)
		return err
	}
	f.advance(StepRegistrationDone)
	return nil
}

func (f *RegistrationFlow) advance(next RegistrationStep) {
	f.step = next
	f.inlineError = ""
}

// fail keeps the current step and records the inline message: no reset, no
// forward progress.
func (f *RegistrationFlow) fail(err error) {
	if typed := pkgerrors.As(err); typed != nil {
		f.inlineError = typed.Message()
		return
	}
	f.inlineError = err.Error()
}
