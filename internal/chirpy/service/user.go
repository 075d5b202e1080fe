package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store"
	"github.com/aussiebroadwan/chirpy/pkg/cryptox"
	"github.com/aussiebroadwan/chirpy/pkg/idx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
)

type UserService struct {
	Users  store.Users
	Hasher *cryptox.PasswordHasher
	Now    func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates an account. Both fields are required.
func (s *UserService) Register(ctx context.Context, email, password string) (domain.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	hash, err := s.Hasher.HashContext(ctx, password)
	if err != nil {
		return domain.UserProfile{}, err
	}

	now := s.now().UTC()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserProfile{}, ErrEmailTaken
		}
		return domain.UserProfile{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u.Profile(), nil
}

// GetUser returns the public profile of a user.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.UserProfile, error) {
	u, err := s.Users.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return domain.UserProfile{}, err
	}
	return u.Profile(), nil
}

// UpdateCredentials sets a new password and, if email is non-empty, a new
// email for the authenticated user. The user is re-read first: a token for
// a deleted account is ErrUnauthorized.
func (s *UserService) UpdateCredentials(ctx context.Context, userID, email, password string) (domain.UserProfile, error) {
	if password == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	current, err := s.Users.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.UserProfile{}, ErrUnauthorized
	}
	if err != nil {
		return domain.UserProfile{}, err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		email = current.Email
	}

	hash, err := s.Hasher.HashContext(ctx, password)
	if err != nil {
		return domain.UserProfile{}, err
	}

	updated, err := s.Users.UpdateCredentials(ctx, userID, email, hash)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.UserProfile{}, ErrEmailTaken
	case errors.Is(err, store.ErrNotFound):
		return domain.UserProfile{}, ErrUnauthorized
	case err != nil:
		return domain.UserProfile{}, err
	}
	return updated.Profile(), nil
}

// UpgradeToChirpyRed marks a user as a paying member.
func (s *UserService) UpgradeToChirpyRed(ctx context.Context, userID string) error {
	err := s.Users.UpgradeToChirpyRed(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user upgraded to chirpy red", "user_id", userID)
	return nil
}

// DeleteAllUsers wipes every account along with its tokens and chirps.
func (s *UserService) DeleteAllUsers(ctx context.Context) error {
	return s.Users.DeleteAllUsers(ctx)
}
