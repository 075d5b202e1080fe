package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store"
	"github.com/aussiebroadwan/chirpy/pkg/idx"
)

// MaxChirpLength is counted in characters, not bytes.
const MaxChirpLength = 140

const censored = "****"

var profaneWords = []string{"kerfuffle", "sharbert", "fornax"}

// CleanChirp checks the length of body and masks profane words. Words are
// split on single spaces so punctuation attached to a word protects it.
func CleanChirp(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("%w: chirp body is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(body) > MaxChirpLength {
		return "", ErrChirpTooLong
	}

	words := strings.Split(body, " ")
	for i, w := range words {
		if slices.Contains(profaneWords, strings.ToLower(w)) {
			words[i] = censored
		}
	}
	return strings.Join(words, " "), nil
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps the ?sort= query value; anything unknown is ascending.
func ParseSortOrder(v string) SortOrder {
	if strings.EqualFold(v, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

type ChirpService struct {
	Chirps store.Chirps
	Now    func() time.Time
}

func (s *ChirpService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ChirpService) Create(ctx context.Context, userID, body string) (domain.Chirp, error) {
	cleaned, err := CleanChirp(body)
	if err != nil {
		return domain.Chirp{}, err
	}

	now := s.now().UTC()
	c := domain.Chirp{
		ID:        idx.NewAt(now).String(),
		Body:      cleaned,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Chirps.CreateChirp(ctx, c); err != nil {
		return domain.Chirp{}, err
	}
	return c, nil
}

func (s *ChirpService) Get(ctx context.Context, id string) (domain.Chirp, error) {
	c, err := s.Chirps.GetChirpByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Chirp{}, ErrNotFound
	}
	return c, err
}

// List returns chirps, optionally only those of authorID, ordered by
// creation time.
func (s *ChirpService) List(ctx context.Context, authorID string, order SortOrder) ([]domain.Chirp, error) {
	chirps, err := s.Chirps.ListChirps(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if order == SortDesc {
		slices.Reverse(chirps)
	}
	return chirps, nil
}

// Delete removes a chirp owned by userID.
func (s *ChirpService) Delete(ctx context.Context, userID, chirpID string) error {
	c, err := s.Get(ctx, chirpID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return ErrForbidden
	}

	err = s.Chirps.DeleteChirp(ctx, chirpID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
