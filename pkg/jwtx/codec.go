package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("jwtx: empty signing secret")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Codec mints and verifies HS256 access tokens with one shared secret. It
// holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces time.Now, mostly for tests that need exact expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec refuses an empty secret so a misconfigured service fails at startup
// instead of on the first login.
func NewCodec(secret string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	c := &Codec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Mint signs a token for subject that expires ttl from now.
func (c *Codec) Mint(subject string, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrEmptySecret
	}
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidClaim)
	}

	claims := NewAccessClaims(subject, ttl, c.now())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first, then the issuer, subject and expiry.
//
// Errors are ErrMalformed, ErrInvalidSig, ErrExpired or ErrInvalidClaim so
// callers can log the reason, but they should all look the same to clients.
func (c *Codec) Verify(token string) (Claims, error) {
	if len(c.secret) == 0 {
		return Claims{}, ErrEmptySecret
	}

	// Claims are validated below with a strict expiry rule.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := claims.ValidateIssuer(Issuer); err != nil {
		return Claims{}, errors.Join(ErrInvalidClaim, err)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidClaim)
	}
	if err := claims.ValidateExpiryAt(c.now()); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// Mint is the stateless form of Codec.Mint.
func Mint(subject string, ttl time.Duration, secret string) (string, error) {
	c, err := NewCodec(secret)
	if err != nil {
		return "", err
	}
	return c.Mint(subject, ttl)
}

// Verify is the stateless form of Codec.Verify.
func Verify(token, secret string) (Claims, error) {
	c, err := NewCodec(secret)
	if err != nil {
		return Claims{}, err
	}
	return c.Verify(token)
}
