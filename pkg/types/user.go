package types

import "time"

// UserProfile is the logged-in customer's account data.
type UserProfile struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName" validate:"required"`
	LastName  string    `json:"lastName" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty,min=10,max=13"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStatus is the answer from GET /api/auth/check-session.
type SessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegistrationCompletion finishes the three-step signup after the OTP has
// been verified.
type RegistrationCompletion struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,min=10,max=13"`
	Password  string `json:"password" validate:"required"`
}

// PasswordChange is the authenticated password update payload.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}
