package chirpysdk_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/app"
	"github.com/aussiebroadwan/chirpy/pkg/chirpysdk"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *chirpysdk.Client {
	t.Helper()

	application, err := app.New(app.Config{
		Env:                  "dev",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8080,
		DatabaseURL:          ":memory:",
		RefreshTokenStore:    app.TokenStoreSQL,
		JWTSecret:            "sdk-test-secret",
		AccessTokenTTL:       time.Hour,
		RefreshTokenTTL:      24 * time.Hour,
		PepperFile:           filepath.Join(t.TempDir(), "pepper"),
		FileServerRoot:       t.TempDir(),
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	return chirpysdk.NewClient(srv.URL + "/")
}

func TestClientSessionFlow(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	require.NoError(t, c.Healthz(ctx))
	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	user, err := c.CreateUser(ctx, "sdk@example.com", "Secr3t!")
	require.NoError(t, err)

	_, err = c.CreateUser(ctx, "sdk@example.com", "again")
	var apiErr *chirpysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.StatusCode)

	_, err = c.Login(ctx, "sdk@example.com", "wrong")
	require.True(t, chirpysdk.IsUnauthorized(err))

	s, err := c.Login(ctx, "sdk@example.com", "Secr3t!")
	require.NoError(t, err)
	require.Equal(t, user.ID, s.User.ID)

	chirp, err := s.CreateChirp(ctx, "Fornax is out there")
	require.NoError(t, err)
	require.Equal(t, "**** is out there", chirp.Body)

	got, err := c.GetChirp(ctx, chirp.ID)
	require.NoError(t, err)
	require.Equal(t, chirp.Body, got.Body)

	mine, err := c.ListChirps(ctx, user.ID, "desc")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	cleaned, err := c.ValidateChirp(ctx, "sharbert")
	require.NoError(t, err)
	require.Equal(t, "****", cleaned)

	updated, err := s.UpdateUser(ctx, "", "N3w!")
	require.NoError(t, err)
	require.Equal(t, "sdk@example.com", updated.Email)

	require.NoError(t, s.DeleteChirp(ctx, chirp.ID))
	_, err = c.GetChirp(ctx, chirp.ID)
	require.True(t, chirpysdk.IsNotFound(err))

	require.NoError(t, s.Revoke(ctx))
	require.True(t, chirpysdk.IsUnauthorized(s.Refresh(ctx)))
	require.NoError(t, c.Revoke(ctx, s.RefreshToken()), "revoke stays quiet for dead tokens")
}

func TestSessionRefreshesExpiredAccessToken(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	_, err := c.CreateUser(ctx, "short@example.com", "pw")
	require.NoError(t, err)

	s, err := c.LoginWithTTL(ctx, "short@example.com", "pw", time.Second)
	require.NoError(t, err)
	first := s.AccessToken()

	time.Sleep(2 * time.Second)

	_, err = s.CreateChirp(ctx, "still here")
	require.NoError(t, err)
	require.NotEqual(t, first, s.AccessToken())
}

func TestForbiddenDelete(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := c.CreateUser(ctx, email, "pw")
		require.NoError(t, err)
	}
	a, err := c.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	b, err := c.Login(ctx, "b@example.com", "pw")
	require.NoError(t, err)

	chirp, err := a.CreateChirp(ctx, "mine")
	require.NoError(t, err)

	require.True(t, chirpysdk.IsForbidden(b.DeleteChirp(ctx, chirp.ID)))
}
