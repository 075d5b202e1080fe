package chirpysdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// Session is a logged-in user. Its methods attach the access token and
// refresh it once when the server rejects it.
type Session struct {
	client *Client
	User   User

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func newSession(c *Client, lr LoginResponse) *Session {
	return &Session{
		client:       c,
		User:         lr.User,
		accessToken:  lr.Token,
		refreshToken: lr.RefreshToken,
	}
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the refresh token. It does not change for the life
// of the session.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh fetches a new access token now.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return errors.New("no refresh token available")
	}

	token, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	s.accessToken = token
	return nil
}

// Revoke revokes the session's refresh token. The current access token keeps
// working until it expires.
func (s *Session) Revoke(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken == "" {
		return errors.New("no refresh token to revoke")
	}
	return s.client.Revoke(ctx, refreshToken)
}

// doAuthRequest sends an authenticated request, refreshing the access token
// and retrying once on 401.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	resp, err := s.client.doRequest(ctx, method, path, body, "Bearer "+s.AccessToken())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.client.doRequest(ctx, method, path, body, "Bearer "+s.AccessToken())
}

// UpdateUser changes the password, and the email when email is not empty.
func (s *Session) UpdateUser(ctx context.Context, email, password string) (*User, error) {
	body, err := encodeBody(CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/users", body)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.User = user
	s.mu.Unlock()
	return &user, nil
}

func (s *Session) CreateChirp(ctx context.Context, body string) (*Chirp, error) {
	b, err := encodeBody(ChirpRequest{Body: body})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/chirps", b)
	if err != nil {
		return nil, err
	}

	var chirp Chirp
	if err := decodeJSON(resp, &chirp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &chirp, nil
}

func (s *Session) DeleteChirp(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/chirps/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
