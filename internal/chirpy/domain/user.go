package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC string
	IsChirpyRed  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is what the API is allowed to show about a user.
type UserProfile struct {
	ID          string
	Email       string
	IsChirpyRed bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u User) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		Email:       u.Email,
		IsChirpyRed: u.IsChirpyRed,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
