package service

import "errors"

var (
	// ErrUnauthorized is the single outward answer for every failed
	// credential or token check.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionCreationFailed means the credentials were fine but the
	// refresh token could not be persisted.
	ErrSessionCreationFailed = errors.New("session creation failed")

	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
	ErrChirpTooLong = errors.New("chirp too long")
)
