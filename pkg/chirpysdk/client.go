package chirpysdk

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a chirpy server. It handles the unauthenticated endpoints
// and opens Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*User, error) {
	body, err := encodeBody(CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users", body, "")
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login opens a session with the server's default access token lifetime.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.LoginWithTTL(ctx, email, password, 0)
}

// LoginWithTTL opens a session asking for a shorter access token lifetime.
// The server ignores a ttl longer than its own limit.
func (c *Client) LoginWithTTL(ctx context.Context, email, password string, ttl time.Duration) (*Session, error) {
	body, err := encodeBody(LoginRequest{
		Email:            email,
		Password:         password,
		ExpiresInSeconds: int(ttl / time.Second),
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/login", body, "")
	if err != nil {
		return nil, err
	}

	var lr LoginResponse
	if err := decodeJSON(resp, &lr, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, lr), nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/refresh", nil, "Bearer "+refreshToken)
	if err != nil {
		return "", err
	}

	var tr TokenResponse
	if err := decodeJSON(resp, &tr, http.StatusOK); err != nil {
		return "", err
	}
	return tr.Token, nil
}

// Revoke revokes a refresh token. It succeeds for unknown tokens too.
func (c *Client) Revoke(ctx context.Context, refreshToken string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/revoke", nil, "Bearer "+refreshToken)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// ListChirps lists chirps, optionally by one author. sort is "asc", "desc"
// or empty for the server default.
func (c *Client) ListChirps(ctx context.Context, authorID, sort string) ([]Chirp, error) {
	q := url.Values{}
	if authorID != "" {
		q.Set("authorId", authorID)
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	path := "/api/chirps"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var chirps []Chirp
	if err := decodeJSON(resp, &chirps, http.StatusOK); err != nil {
		return nil, err
	}
	return chirps, nil
}

func (c *Client) GetChirp(ctx context.Context, id string) (*Chirp, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/chirps/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}

	var chirp Chirp
	if err := decodeJSON(resp, &chirp, http.StatusOK); err != nil {
		return nil, err
	}
	return &chirp, nil
}

// ValidateChirp returns the cleaned body the server would store.
func (c *Client) ValidateChirp(ctx context.Context, body string) (string, error) {
	b, err := encodeBody(ChirpRequest{Body: body})
	if err != nil {
		return "", err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/validate_chirp", b, "")
	if err != nil {
		return "", err
	}

	var vr ValidateChirpResponse
	if err := decodeJSON(resp, &vr, http.StatusOK); err != nil {
		return "", err
	}
	return vr.CleanedBody, nil
}

// Healthz reports whether the server is up.
func (c *Client) Healthz(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/healthz", nil, "")
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/readyz", nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// drain discards the rest of a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
