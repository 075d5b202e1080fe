package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RefreshTokens) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRefreshTokens(client, "test:")
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	mr, rt := newTestRedis(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	token := domain.RefreshToken{
		TokenHash: "fp-1",
		UserID:    "u1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, rt.CreateRefreshToken(ctx, token))
	require.True(t, mr.Exists("test:refresh:fp-1"))
	require.Greater(t, mr.TTL("test:refresh:fp-1"), time.Duration(0))

	got, err := rt.GetRefreshTokenByHash(ctx, "fp-1")
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)
	require.True(t, got.CreatedAt.Equal(now))
	require.True(t, got.ExpiresAt.Equal(token.ExpiresAt))
	require.Nil(t, got.RevokedAt)

	require.ErrorIs(t, rt.CreateRefreshToken(ctx, token), store.ErrAlreadyExists)

	_, err = rt.GetRefreshTokenByHash(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	_, rt := newTestRedis(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, rt.CreateRefreshToken(ctx, domain.RefreshToken{
		TokenHash: "fp", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	ok, err := rt.RevokeRefreshToken(ctx, "fp", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = rt.RevokeRefreshToken(ctx, "fp", now.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, ok)

	got, err := rt.GetRefreshTokenByHash(ctx, "fp")
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	require.True(t, got.RevokedAt.Equal(now))

	ok, err = rt.RevokeRefreshToken(ctx, "unknown", now)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestConcurrentRevokeHasOneWinner(t *testing.T) {
	ctx := context.Background()
	_, rt := newTestRedis(t)

	now := time.Now().UTC()
	require.NoError(t, rt.CreateRefreshToken(ctx, domain.RefreshToken{
		TokenHash: "race", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
		errs atomic.Int32
	)
	for range 16 {
		wg.Go(func() {
			ok, err := rt.RevokeRefreshToken(ctx, "race", time.Now())
			if err != nil {
				errs.Add(1)
				return
			}
			if ok {
				wins.Add(1)
			}
		})
	}
	wg.Wait()

	require.Zero(t, errs.Load())
	require.EqualValues(t, 1, wins.Load())
}

func TestKeysExpireWithToken(t *testing.T) {
	ctx := context.Background()
	mr, rt := newTestRedis(t)

	now := time.Now().UTC()
	require.NoError(t, rt.CreateRefreshToken(ctx, domain.RefreshToken{
		TokenHash: "short", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Minute),
	}))

	mr.FastForward(2 * time.Minute)

	_, err := rt.GetRefreshTokenByHash(ctx, "short")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, rt.DeleteExpiredRefreshTokens(ctx, time.Now()))
}

func TestPing(t *testing.T) {
	mr, rt := newTestRedis(t)
	require.NoError(t, rt.Ping(context.Background()))

	mr.Close()
	require.Error(t, rt.Ping(context.Background()))
}
