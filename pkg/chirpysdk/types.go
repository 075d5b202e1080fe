package chirpysdk

import "time"

// ErrorResponse is the body of every JSON error the service returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ============================================================================
// Users and sessions
// ============================================================================

// CredentialsRequest is the body of POST /api/users and PUT /api/users.
// Email may be left empty on PUT to change only the password.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login. ExpiresInSeconds can only
// shorten the server's access token lifetime.
type LoginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	ExpiresInSeconds int    `json:"expiresInSeconds,omitempty"`
}

// User is the public view of an account.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	IsChirpyRed bool      `json:"isChirpyRed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LoginResponse is the user profile plus a fresh token pair.
type LoginResponse struct {
	User
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is returned by POST /api/refresh.
type TokenResponse struct {
	Token string `json:"token"`
}

// ============================================================================
// Chirps
// ============================================================================

type ChirpRequest struct {
	Body string `json:"body"`
}

type Chirp struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateChirpResponse is returned by POST /api/validate_chirp.
type ValidateChirpResponse struct {
	CleanedBody string `json:"cleanedBody"`
}

// ============================================================================
// Webhooks
// ============================================================================

// EventUserUpgraded is the only webhook event the service acts on.
const EventUserUpgraded = "user.upgraded"

// WebhookRequest is the payment provider's event envelope.
type WebhookRequest struct {
	Event string `json:"event"`
	Data  struct {
		UserID string `json:"userId"`
	} `json:"data"`
}

// ============================================================================
// Health
// ============================================================================

// HealthChecks reports individual dependency status.
type HealthChecks struct {
	Database   string `json:"database"`
	TokenStore string `json:"token_store,omitempty"`
}

// HealthResponse is returned by GET /api/readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
