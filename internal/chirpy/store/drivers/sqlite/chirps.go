package sqlite

import (
	"context"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
)

const chirpColumns = `id, body, user_id, created_at, updated_at`

type chirpsRepo struct {
	db dbtx
}

func scanChirp(row rowScanner) (domain.Chirp, error) {
	var c domain.Chirp
	if err := row.Scan(&c.ID, &c.Body, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Chirp{}, mapNotFound(err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *chirpsRepo) CreateChirp(ctx context.Context, c domain.Chirp) error {
	created := orNow(c.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chirps (`+chirpColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Body, c.UserID, created, created,
	)
	return mapConstraint(err)
}

func (r *chirpsRepo) GetChirpByID(ctx context.Context, id string) (domain.Chirp, error) {
	return scanChirp(r.db.QueryRowContext(ctx,
		`SELECT `+chirpColumns+` FROM chirps WHERE id = ?`, id))
}

func (r *chirpsRepo) ListChirps(ctx context.Context, authorID string) ([]domain.Chirp, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+chirpColumns+` FROM chirps
		 WHERE ? = '' OR user_id = ?
		 ORDER BY created_at ASC, id ASC`,
		authorID, authorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chirps := []domain.Chirp{}
	for rows.Next() {
		c, err := scanChirp(rows)
		if err != nil {
			return nil, err
		}
		chirps = append(chirps, c)
	}
	return chirps, rows.Err()
}

func (r *chirpsRepo) DeleteChirp(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chirps WHERE id = ?`, id)
	return requireAffected(res, err)
}
