// Package redis keeps refresh tokens in redis instead of the SQL database.
// Each token is a hash keyed by its fingerprint that expires with the token.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store"
	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "chirpy:"

	fieldUserID    = "user_id"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
	fieldExpiresAt = "expires_at"
	fieldRevokedAt = "revoked_at"
)

// revokeLua sets revoked_at only if the token exists and is not revoked yet.
// Returns 1 for the caller that flipped it, 0 otherwise.
var revokeLua = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
local ok = redis.call("HSETNX", KEYS[1], "revoked_at", ARGV[1])
if ok == 1 then
  redis.call("HSET", KEYS[1], "updated_at", ARGV[1])
end
return ok
`)

type RefreshTokens struct {
	client goredis.UniversalClient
	prefix string
}

var _ store.RefreshTokens = (*RefreshTokens)(nil)

func NewRefreshTokens(client goredis.UniversalClient, prefix string) *RefreshTokens {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RefreshTokens{client: client, prefix: prefix}
}

func (r *RefreshTokens) key(hash string) string {
	return r.prefix + "refresh:" + hash
}

func (r *RefreshTokens) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	key := r.key(t.TokenHash)
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	return r.client.Watch(ctx, func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return store.ErrAlreadyExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fieldUserID, t.UserID,
				fieldCreatedAt, formatTime(created),
				fieldUpdatedAt, formatTime(created),
				fieldExpiresAt, formatTime(t.ExpiresAt),
			)
			pipe.ExpireAt(ctx, key, t.ExpiresAt)
			return nil
		})
		return err
	}, key)
}

func (r *RefreshTokens) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	fields, err := r.client.HGetAll(ctx, r.key(hash)).Result()
	if err != nil {
		return domain.RefreshToken{}, err
	}
	if len(fields) == 0 {
		return domain.RefreshToken{}, store.ErrNotFound
	}

	t := domain.RefreshToken{TokenHash: hash, UserID: fields[fieldUserID]}
	if t.CreatedAt, err = parseTime(fields[fieldCreatedAt]); err != nil {
		return domain.RefreshToken{}, err
	}
	if t.UpdatedAt, err = parseTime(fields[fieldUpdatedAt]); err != nil {
		return domain.RefreshToken{}, err
	}
	if t.ExpiresAt, err = parseTime(fields[fieldExpiresAt]); err != nil {
		return domain.RefreshToken{}, err
	}
	if v, ok := fields[fieldRevokedAt]; ok {
		at, err := parseTime(v)
		if err != nil {
			return domain.RefreshToken{}, err
		}
		t.RevokedAt = &at
	}
	return t, nil
}

func (r *RefreshTokens) RevokeRefreshToken(ctx context.Context, hash string, at time.Time) (bool, error) {
	n, err := revokeLua.Run(ctx, r.client, []string{r.key(hash)}, formatTime(at)).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// DeleteExpiredRefreshTokens is a no-op: keys carry their own EXPIREAT.
func (r *RefreshTokens) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	return nil
}

// Ping checks the redis connection; readiness includes it when redis is
// the token store.
func (r *RefreshTokens) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("redis: missing timestamp field")
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("redis: parse timestamp: %w", err)
	}
	return t.UTC(), nil
}
