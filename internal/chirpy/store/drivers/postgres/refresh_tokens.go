package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	created := orNow(t.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token_hash, user_id, created_at, updated_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.TokenHash, t.UserID, created, created, t.ExpiresAt.UTC(),
	)
	return mapError(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	var (
		t         domain.RefreshToken
		revokedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT token_hash, user_id, created_at, updated_at, expires_at, revoked_at
		 FROM refresh_tokens WHERE token_hash = $1`, hash,
	).Scan(&t.TokenHash, &t.UserID, &t.CreatedAt, &t.UpdatedAt, &t.ExpiresAt, &revokedAt)
	if err != nil {
		return domain.RefreshToken{}, mapError(err)
	}

	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	t.ExpiresAt = t.ExpiresAt.UTC()
	if revokedAt.Valid {
		at := revokedAt.Time.UTC()
		t.RevokedAt = &at
	}
	return t, nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, hash string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = $1, updated_at = $1
		 WHERE token_hash = $2 AND revoked_at IS NULL`,
		at.UTC(), hash,
	)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapError(err)
	}
	return n > 0, nil
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= $1`, now.UTC())
	return mapError(err)
}
