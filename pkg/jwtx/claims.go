package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the "iss" claim of every access token.
const Issuer = "chirpy"

// Default token TTL constants. The service overrides them from config.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 60 * 24 * time.Hour
)

// Claims are the access-token claims: {iss, sub, iat, exp}.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds claims for subject valid for ttl from now. Times are
// truncated to whole seconds because that is what the token can carry.
func NewAccessClaims(subject string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryAt fails with ErrExpired once now >= exp. There is no leeway
// for clock skew.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
