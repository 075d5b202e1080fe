package sqlite

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
		 VALUES (?, ?, ?, ?, ?)`,
		t.TokenHash, t.UserID, created, created, t.ExpiresAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	var (
		t         domain.RefreshToken
		revokedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT token_hash, user_id, created_at, updated_at, expires_at, revoked_at
		 FROM refresh_tokens WHERE token_hash = ?`, hash,
	).Scan(&t.TokenHash, &t.UserID, &t.CreatedAt, &t.UpdatedAt, &t.ExpiresAt, &revokedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}

	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	t.ExpiresAt = t.ExpiresAt.UTC()
	t.RevokedAt = mapNullTimePtr(revokedAt)
	return t, nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, hash string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = ?, updated_at = ?
		 WHERE token_hash = ? AND revoked_at IS NULL`,
		at.UTC(), at.UTC(), hash,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, now.UTC())
	return err
}
