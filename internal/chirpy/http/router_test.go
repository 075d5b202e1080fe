package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store/drivers/sqlite"
	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
	"github.com/aussiebroadwan/chirpy/pkg/cryptox"
	"github.com/aussiebroadwan/chirpy/pkg/httpx"
	"github.com/aussiebroadwan/chirpy/pkg/jwtx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testPolkaKey = "f271c81ff7084ee5b99a5091b42d486e"

type testEnv struct {
	router *Router
	store  *sqlite.Store
	codec  *jwtx.Codec
}

func newTestEnv(t *testing.T, platform string, opts ...func(*Router)) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations(context.Background()))

	codec, err := jwtx.NewCodec("http-test-secret")
	require.NoError(t, err)
	hasher := cryptox.NewPasswordHasher("")

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>Chirpy</h1>"), 0o600))

	r := NewRouter(codec, "test", platform, s, slogx.Discard())
	r.SessionService = &service.SessionService{
		Users:         s.Users(),
		RefreshTokens: s.RefreshTokens(),
		Codec:         codec,
		Hasher:        hasher,
	}
	r.UserService = &service.UserService{Users: s.Users(), Hasher: hasher}
	r.ChirpService = &service.ChirpService{Chirps: s.Chirps()}
	r.PolkaKey = testPolkaKey
	r.FileServerRoot = root
	for _, opt := range opts {
		opt(r)
	}
	r.ApplyRoutes()

	return &testEnv{router: r, store: s, codec: codec}
}

// do sends one request through the full router. auth is the raw
// Authorization header value.
func (e *testEnv) do(t *testing.T, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (e *testEnv) createUser(t *testing.T, email, password string) chirpysdk.User {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/users", "", chirpysdk.CredentialsRequest{Email: email, Password: password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[chirpysdk.User](t, rec)
}

func (e *testEnv) login(t *testing.T, email, password string) chirpysdk.LoginResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/login", "", chirpysdk.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[chirpysdk.LoginResponse](t, rec)
}

func TestSessionLifecycle(t *testing.T) {
	e := newTestEnv(t, PlatformDev)

	user := e.createUser(t, "walt@example.com", "Secr3t!")
	require.NotEmpty(t, user.ID)
	require.False(t, user.IsChirpyRed)

	session := e.login(t, "walt@example.com", "Secr3t!")
	require.Equal(t, user.ID, session.ID)
	require.NotEmpty(t, session.Token)
	require.NotEmpty(t, session.RefreshToken)

	claims, err := e.codec.Verify(session.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)

	rec := e.do(t, http.MethodPost, "/api/refresh", "Bearer "+session.RefreshToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed := decode[chirpysdk.TokenResponse](t, rec)
	claims, err = e.codec.Verify(refreshed.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)

	rec = e.do(t, http.MethodPost, "/api/revoke", "Bearer "+session.RefreshToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/refresh", "Bearer "+session.RefreshToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, `Bearer error="invalid_token"`, rec.Header().Get("WWW-Authenticate"))

	t.Run("revoke is always 204 with a bearer", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, e.do(t, http.MethodPost, "/api/revoke", "Bearer "+session.RefreshToken, nil).Code)
		require.Equal(t, http.StatusNoContent, e.do(t, http.MethodPost, "/api/revoke", "Bearer never-issued", nil).Code)
	})

	t.Run("revoke without bearer", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/api/revoke", "", nil).Code)
		require.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/api/revoke", "Basic abc", nil).Code)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/api/refresh", "Bearer "+session.Token, nil).Code)
	})
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	e := newTestEnv(t, PlatformDev)
	e.createUser(t, "saul@example.com", "better-call")

	unknown := e.do(t, http.MethodPost, "/api/login", "", chirpysdk.LoginRequest{Email: "nobody@example.com", Password: "better-call"})
	wrong := e.do(t, http.MethodPost, "/api/login", "", chirpysdk.LoginRequest{Email: "saul@example.com", Password: "wrong"})

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, unknown.Code, wrong.Code)
	require.Equal(t, unknown.Body.String(), wrong.Body.String())
	require.Equal(t, unknown.Header().Get("WWW-Authenticate"), wrong.Header().Get("WWW-Authenticate"))
}

func TestLoginExpiresInSeconds(t *testing.T) {
	e := newTestEnv(t, PlatformDev)
	e.createUser(t, "ttl@example.com", "pw")

	lifetime := func(req chirpysdk.LoginRequest) time.Duration {
		rec := e.do(t, http.MethodPost, "/api/login", "", req)
		require.Equal(t, http.StatusOK, rec.Code)
		claims, err := e.codec.Verify(decode[chirpysdk.LoginResponse](t, rec).Token)
		require.NoError(t, err)
		return claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	}

	require.Equal(t, time.Minute, lifetime(chirpysdk.LoginRequest{Email: "ttl@example.com", Password: "pw", ExpiresInSeconds: 60}))
	require.Equal(t, jwtx.DefaultAccessTokenTTL, lifetime(chirpysdk.LoginRequest{Email: "ttl@example.com", Password: "pw", ExpiresInSeconds: 86400}))
	require.Equal(t, jwtx.DefaultAccessTokenTTL, lifetime(chirpysdk.LoginRequest{Email: "ttl@example.com", Password: "pw"}))
}

func TestLoginRateLimited(t *testing.T) {
	e := newTestEnv(t, PlatformDev)

	var last *httptest.ResponseRecorder
	for range httpx.StrictLimit.Burst + 1 {
		last = e.do(t, http.MethodPost, "/api/login", "", chirpysdk.LoginRequest{Email: "x@example.com", Password: "pw"})
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestUsers(t *testing.T) {
	e := newTestEnv(t, PlatformDev)
	walt := e.createUser(t, "walt@example.com", "old")
	e.createUser(t, "jesse@example.com", "pw")

	t.Run("create validation", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/users", "", chirpysdk.CredentialsRequest{Email: "a@example.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = e.do(t, http.MethodPost, "/api/users", "", chirpysdk.CredentialsRequest{Email: "walt@example.com", Password: "x"})
		require.Equal(t, http.StatusConflict, rec.Code)

		rec = e.do(t, http.MethodPost, "/api/users", "", `{"email":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Invalid request body", decode[chirpysdk.ErrorResponse](t, rec).Error)
	})

	session := e.login(t, "walt@example.com", "old")
	bearer := "Bearer " + session.Token

	t.Run("update requires access token", func(t *testing.T) {
		rec := e.do(t, http.MethodPut, "/api/users", "", chirpysdk.CredentialsRequest{Email: "x@example.com", Password: "x"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = e.do(t, http.MethodPut, "/api/users", "Bearer "+session.RefreshToken, chirpysdk.CredentialsRequest{Password: "x"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("update email collision", func(t *testing.T) {
		rec := e.do(t, http.MethodPut, "/api/users", bearer, chirpysdk.CredentialsRequest{Email: "jesse@example.com", Password: "x"})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("update credentials", func(t *testing.T) {
		rec := e.do(t, http.MethodPut, "/api/users", bearer, chirpysdk.CredentialsRequest{Email: "heisenberg@example.com", Password: "new"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[chirpysdk.User](t, rec)
		require.Equal(t, walt.ID, updated.ID)
		require.Equal(t, "heisenberg@example.com", updated.Email)

		again := e.login(t, "heisenberg@example.com", "new")
		require.Equal(t, walt.ID, again.ID)
	})
}

func TestChirps(t *testing.T) {
	e := newTestEnv(t, PlatformDev)
	alice := e.createUser(t, "alice@example.com", "pw")
	e.createUser(t, "bob@example.com", "pw")
	aliceAuth := "Bearer " + e.login(t, "alice@example.com", "pw").Token
	bobAuth := "Bearer " + e.login(t, "bob@example.com", "pw").Token

	post := func(auth, body string) *httptest.ResponseRecorder {
		return e.do(t, http.MethodPost, "/api/chirps", auth, chirpysdk.ChirpRequest{Body: body})
	}

	rec := post(aliceAuth, "I hear Mastodon is better than Chirpy. sharbert I need to migrate")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[chirpysdk.Chirp](t, rec)
	require.Equal(t, "I hear Mastodon is better than Chirpy. **** I need to migrate", first.Body)
	require.Equal(t, alice.ID, first.UserID)

	rec = post(bobAuth, "bob here")
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[chirpysdk.Chirp](t, rec)

	t.Run("create needs auth", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, post("", "anon").Code)
	})

	t.Run("too long", func(t *testing.T) {
		rec := post(aliceAuth, strings.Repeat("a", 141))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Chirp is too long. Max length is 140", decode[chirpysdk.ErrorResponse](t, rec).Error)
	})

	t.Run("list", func(t *testing.T) {
		all := decode[[]chirpysdk.Chirp](t, e.do(t, http.MethodGet, "/api/chirps", "", nil))
		require.Len(t, all, 2)
		require.Equal(t, first.ID, all[0].ID)

		desc := decode[[]chirpysdk.Chirp](t, e.do(t, http.MethodGet, "/api/chirps?sort=desc", "", nil))
		require.Equal(t, second.ID, desc[0].ID)

		mine := decode[[]chirpysdk.Chirp](t, e.do(t, http.MethodGet, "/api/chirps?authorId="+alice.ID, "", nil))
		require.Len(t, mine, 1)
		require.Equal(t, first.ID, mine[0].ID)

		rec := e.do(t, http.MethodGet, "/api/chirps?authorId=nobody", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("get", func(t *testing.T) {
		got := decode[chirpysdk.Chirp](t, e.do(t, http.MethodGet, "/api/chirps/"+first.ID, "", nil))
		require.Equal(t, first.Body, got.Body)
		require.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/chirps/missing", "", nil).Code)
	})

	t.Run("delete", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodDelete, "/api/chirps/"+first.ID, "", nil).Code)
		require.Equal(t, http.StatusForbidden, e.do(t, http.MethodDelete, "/api/chirps/"+first.ID, bobAuth, nil).Code)
		require.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, "/api/chirps/"+first.ID, aliceAuth, nil).Code)
		require.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, "/api/chirps/"+first.ID, aliceAuth, nil).Code)
	})
}

func TestValidateChirp(t *testing.T) {
	e := newTestEnv(t, PlatformDev)

	rec := e.do(t, http.MethodPost, "/api/validate_chirp", "", chirpysdk.ChirpRequest{Body: "What a Kerfuffle today"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "What a **** today", decode[chirpysdk.ValidateChirpResponse](t, rec).CleanedBody)

	rec = e.do(t, http.MethodPost, "/api/validate_chirp", "", chirpysdk.ChirpRequest{Body: strings.Repeat("b", 200)})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/validate_chirp", "", chirpysdk.ChirpRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPolkaWebhook(t *testing.T) {
	e := newTestEnv(t, PlatformDev)
	user := e.createUser(t, "red@example.com", "pw")

	upgrade := func(userID string) chirpysdk.WebhookRequest {
		var req chirpysdk.WebhookRequest
		req.Event = chirpysdk.EventUserUpgraded
		req.Data.UserID = userID
		return req
	}

	t.Run("key checked first", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/api/polka/webhooks", "", upgrade(user.ID)).Code)
		require.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/api/polka/webhooks", "ApiKey wrong", upgrade(user.ID)).Code)
		require.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodPost, "/api/polka/webhooks", "ApiKey wrong", `{"event":"user.other"}`).Code)
	})

	t.Run("other events are ignored", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/polka/webhooks", "ApiKey "+testPolkaKey, `{"event":"user.payment_failed","data":{"userId":"x"}}`)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/polka/webhooks", "ApiKey "+testPolkaKey, upgrade("ghost"))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upgrade", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/polka/webhooks", "ApiKey "+testPolkaKey, upgrade(user.ID))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, e.login(t, "red@example.com", "pw").IsChirpyRed)
	})

	t.Run("empty configured key rejects everything", func(t *testing.T) {
		e := newTestEnv(t, PlatformDev, func(r *Router) { r.PolkaKey = "" })
		rec := e.do(t, http.MethodPost, "/api/polka/webhooks", "ApiKey ", upgrade(user.ID))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	e := newTestEnv(t, PlatformDev)

	rec := e.do(t, http.MethodGet, "/api/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = e.do(t, http.MethodGet, "/api/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[chirpysdk.HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "test", ready.Version)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Empty(t, ready.Checks.TokenStore)

	t.Run("token store down", func(t *testing.T) {
		e := newTestEnv(t, PlatformDev, func(r *Router) {
			r.TokenStore = pingerFunc(func(context.Context) error { return errors.New("connection refused") })
		})
		rec := e.do(t, http.MethodGet, "/api/readyz", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		ready := decode[chirpysdk.HealthResponse](t, rec)
		require.Equal(t, "degraded", ready.Status)
		require.Equal(t, "error: connection refused", ready.Checks.TokenStore)
	})
}

func TestAdmin(t *testing.T) {
	e := newTestEnv(t, PlatformDev)
	e.createUser(t, "admin@example.com", "pw")

	for range 3 {
		rec := e.do(t, http.MethodGet, "/app/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Chirpy")
	}

	rec := e.do(t, http.MethodGet, "/admin/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Chirpy has been visited 3 times!")

	rec = e.do(t, http.MethodPost, "/admin/reset", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, e.router.Hits().Load())
	require.Contains(t, e.do(t, http.MethodGet, "/admin/metrics", "", nil).Body.String(), "visited 0 times")

	rec = e.do(t, http.MethodPost, "/api/login", "", chirpysdk.LoginRequest{Email: "admin@example.com", Password: "pw"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	t.Run("reset is dev only", func(t *testing.T) {
		prod := newTestEnv(t, "prod")
		prod.createUser(t, "keep@example.com", "pw")

		rec := prod.do(t, http.MethodPost, "/admin/reset", "", nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		prod.login(t, "keep@example.com", "pw")
	})
}

func TestSwaggerDocs(t *testing.T) {
	e := newTestEnv(t, PlatformDev)

	rec := e.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/api/login")
}

func TestRequestIDHeader(t *testing.T) {
	e := newTestEnv(t, PlatformDev)

	rec := e.do(t, http.MethodGet, "/api/healthz", "", nil)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
