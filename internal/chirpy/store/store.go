package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/chirpy/internal/chirpy/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Sub-repositories hang off it so a Tx can hand out the
// same repos bound to the transaction.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Chirps() Chirps

	ApplyMigrations(ctx context.Context) error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. A duplicate email is ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateCredentials replaces email and password hash and bumps
	// updated_at, returning the updated row.
	UpdateCredentials(ctx context.Context, id, email, passwordHash string) (domain.User, error)

	// UpdatePasswordHash sets the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error

	// UpgradeToChirpyRed sets is_chirpy_red. ErrNotFound if the user is gone.
	UpgradeToChirpyRed(ctx context.Context, id string) error

	// DeleteAllUsers cascades to refresh_tokens and chirps.
	DeleteAllUsers(ctx context.Context) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the record for a token fingerprint,
	// revoked or not.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken sets revoked_at if it is not already set. It
	// reports whether this call performed the revocation.
	RevokeRefreshToken(ctx context.Context, hash string, at time.Time) (bool, error)

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error
}

type Chirps interface {
	CreateChirp(ctx context.Context, c domain.Chirp) error
	GetChirpByID(ctx context.Context, id string) (domain.Chirp, error)

	// ListChirps returns chirps oldest first, all of them when authorID is
	// empty.
	ListChirps(ctx context.Context, authorID string) ([]domain.Chirp, error)

	DeleteChirp(ctx context.Context, id string) error
}

// WithRefreshTokens swaps the refresh token repository of s, so tokens can
// live somewhere other than the SQL database (redis). Transactions started
// from the returned Store keep the swap; token writes made through them are
// not part of the SQL transaction.
func WithRefreshTokens(s Store, rt RefreshTokens) Store {
	return &refreshOverride{Store: s, rt: rt}
}

type refreshOverride struct {
	Store
	rt RefreshTokens
}

func (o *refreshOverride) RefreshTokens() RefreshTokens { return o.rt }

func (o *refreshOverride) Tx(ctx context.Context) (Tx, error) {
	tx, err := o.Store.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &txRefreshOverride{baseTx: tx, rt: o.rt}, nil
}

func (o *refreshOverride) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return o.Store.WithTx(ctx, func(tx Tx) error {
		return fn(&txRefreshOverride{baseTx: tx, rt: o.rt})
	})
}

// baseTx lets txRefreshOverride embed a Tx without the field name shadowing
// the promoted Tx method.
type baseTx = Tx

type txRefreshOverride struct {
	baseTx
	rt RefreshTokens
}

func (o *txRefreshOverride) RefreshTokens() RefreshTokens { return o.rt }
