package types

// AdminProfile is the back-office operator's account. SecretKey is the
// recovery credential; render it masked unless the operator asks otherwise.
type AdminProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	SecretKey string `json:"secretKey"`
}

// MaskedSecretKey hides all but the last four characters of the recovery key.
func (a AdminProfile) MaskedSecretKey() string {
	if len(a.SecretKey) <= 4 {
		return "****"
	}
	masked := make([]byte, len(a.SecretKey)-4)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + a.SecretKey[len(a.SecretKey)-4:]
}

// AdminSession is what POST /api/admin/login yields. The token is opaque to
// the client apart from its expiry claim.
type AdminSession struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}
