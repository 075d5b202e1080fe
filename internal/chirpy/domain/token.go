package domain

import "time"

// RefreshToken is the stored record of an opaque refresh token. The raw
// value is never stored, only its fingerprint.
type RefreshToken struct {
	TokenHash string // base64url SHA-256 of the raw token
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the token can still be exchanged at now.
func (t RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// Session is the result of a successful login.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         UserProfile
}
