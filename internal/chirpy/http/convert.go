package http

import (
	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
)

func toUser(p domain.UserProfile) chirpysdk.User {
	return chirpysdk.User{
		ID:          p.ID,
		Email:       p.Email,
		IsChirpyRed: p.IsChirpyRed,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toChirp(c domain.Chirp) chirpysdk.Chirp {
	return chirpysdk.Chirp{
		ID:        c.ID,
		Body:      c.Body,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
