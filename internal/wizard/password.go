package wizard

import (
	"strings"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
)

const passwordSpecials = "!@#$%^&*()"

// CheckPasswordStrength enforces the reset-password policy: at least 8
// characters with an upper, a lower, a digit, and one of !@#$%^&*().
func CheckPasswordStrength(password string) error {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	switch {
	case len(password) < 8:
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	case !hasUpper:
		return pkgerrors.New(pkgerrors.CodeValidation, "password needs an uppercase letter")
	case !hasLower:
		return pkgerrors.New(pkgerrors.CodeValidation, "password needs a lowercase letter")
	case !hasDigit:
		return pkgerrors.New(pkgerrors.CodeValidation, "password needs a digit")
	case !hasSpecial:
		return pkgerrors.New(pkgerrors.CodeValidation, "password needs one of "+passwordSpecials)
	default:
		return nil
	}
}
