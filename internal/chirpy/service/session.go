package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store"
	"github.com/aussiebroadwan/chirpy/pkg/cryptox"
	"github.com/aussiebroadwan/chirpy/pkg/jwtx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

// SessionService turns credentials into access/refresh token pairs and
// manages the refresh token lifecycle.
type SessionService struct {
	Users         store.Users
	RefreshTokens store.RefreshTokens
	Codec         *jwtx.Codec
	Hasher        *cryptox.PasswordHasher
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	dummyOnce   sync.Once
	dummyDigest string
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *SessionService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// Login checks email and password and opens a session. requestedTTL can
// only shorten the configured access token lifetime; zero or negative means
// "use the default". Every credential failure is ErrUnauthorized.
func (s *SessionService) Login(ctx context.Context, email, password string, requestedTTL time.Duration) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Error("login: user lookup failed", "error", err)
		}
		s.burnVerify(password)
		return domain.Session{}, ErrUnauthorized
	}

	ok, err := s.Hasher.Verify(password, user.PasswordHash)
	if err != nil {
		l.Error("login: stored password digest is corrupt", "user_id", user.ID, "error", err)
		return domain.Session{}, errors.Join(ErrUnauthorized, err)
	}
	if !ok {
		l.Info("login: password mismatch", "user_id", user.ID)
		return domain.Session{}, ErrUnauthorized
	}

	ttl := s.accessTTL()
	if requestedTTL > 0 && requestedTTL < ttl {
		ttl = requestedTTL
	}

	access, err := s.Codec.Mint(user.ID, ttl)
	if err != nil {
		l.Error("login: mint access token", "user_id", user.ID, "error", err)
		return domain.Session{}, ErrUnauthorized
	}

	refresh, err := s.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		l.Error("login: persist refresh token", "user_id", user.ID, "error", err)
		return domain.Session{}, ErrSessionCreationFailed
	}

	return domain.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Profile(),
	}, nil
}

// burnVerify runs one argon2 verification against a throwaway digest so an
// unknown email costs the same as a wrong password.
func (s *SessionService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.Hasher.Hash("chirpy-timing-equaliser")
	})
	if s.dummyDigest != "" {
		_, _ = s.Hasher.Verify(password, s.dummyDigest)
	}
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *SessionService) Refresh(ctx context.Context, rawRefresh string) (string, error) {
	l := slogx.FromContext(ctx)

	user, ok, err := s.ResolveRefreshToken(ctx, rawRefresh)
	if err != nil {
		l.Error("refresh: resolve refresh token", "error", err)
		return "", ErrUnauthorized
	}
	if !ok {
		return "", ErrUnauthorized
	}

	access, err := s.Codec.Mint(user.ID, s.accessTTL())
	if err != nil {
		l.Error("refresh: mint access token", "user_id", user.ID, "error", err)
		return "", ErrUnauthorized
	}
	return access, nil
}

// Revoke revokes a refresh token. Unknown and already revoked tokens are not
// errors.
func (s *SessionService) Revoke(ctx context.Context, rawRefresh string) error {
	revoked, err := s.RevokeRefreshToken(ctx, rawRefresh)
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Debug("refresh token revoke", "revoked", revoked)
	return nil
}

// IssueRefreshToken creates and stores a new refresh token for userID and
// returns its raw value. Only the fingerprint is persisted.
func (s *SessionService) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	err = s.RefreshTokens.CreateRefreshToken(ctx, domain.RefreshToken{
		TokenHash: cryptox.FingerprintToken(raw),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.refreshTTL()),
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// ResolveRefreshToken returns the owner of rawRefresh if the token exists,
// is not revoked, has not expired and the user still exists. Any of those
// failing is (zero, false, nil); err is only for storage failures.
func (s *SessionService) ResolveRefreshToken(ctx context.Context, rawRefresh string) (domain.User, bool, error) {
	if rawRefresh == "" {
		return domain.User{}, false, nil
	}

	rt, err := s.RefreshTokens.GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(rawRefresh))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	if !rt.Active(s.now()) {
		return domain.User{}, false, nil
	}

	user, err := s.Users.GetUserByID(ctx, rt.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// RevokeRefreshToken reports whether this call revoked the token. Revoking
// twice, or revoking something unknown, is false with no error.
func (s *SessionService) RevokeRefreshToken(ctx context.Context, rawRefresh string) (bool, error) {
	if rawRefresh == "" {
		return false, nil
	}
	return s.RefreshTokens.RevokeRefreshToken(ctx, cryptox.FingerprintToken(rawRefresh), s.now().UTC())
}
