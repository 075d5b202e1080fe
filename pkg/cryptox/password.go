package cryptox

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrIntegrity reports a stored digest that cannot be parsed back into its
// argon2id parameters. This means the stored value is corrupt, it is not a
// password mismatch.
var ErrIntegrity = errors.New("cryptox: unparseable password digest")

// PasswordHasher hashes and verifies passwords with Argon2id. The zero value
// is usable and hashes without a pepper.
type PasswordHasher struct {
	pepper string
}

// NewPasswordHasher returns a hasher that appends pepper to every password
// before hashing. Changing the pepper invalidates every stored digest.
func NewPasswordHasher(pepper string) *PasswordHasher {
	return &PasswordHasher{pepper: pepper}
}

// Hash generates a PHC-format Argon2id digest including salt and parameters.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}

	key := argon2.IDKey([]byte(password+h.pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// HashContext runs Hash on its own goroutine and gives up when ctx is done.
// The hashing goroutine still runs to completion in the background.
func (h *PasswordHasher) HashContext(ctx context.Context, password string) (string, error) {
	type result struct {
		digest string
		err    error
	}

	done := make(chan result, 1)
	go func() {
		digest, err := h.Hash(password)
		done <- result{digest: digest, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.digest, r.err
	}
}

// Verify reports whether password matches the PHC-format digest. A mismatch
// is (false, nil). An error wrapping ErrIntegrity is only returned when the
// digest cannot be parsed at all.
func (h *PasswordHasher) Verify(password, digest string) (bool, error) {
	p, err := parseDigest(digest)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		p.salt,
		p.iterations,
		p.memory,
		p.parallelism,
		uint32(len(p.key)), // #nosec G115 - key length comes from a decoded digest
	)

	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

// Upper bounds accepted when parsing a stored digest. Anything larger
// would make Verify run or allocate without limit.
const (
	maxDigestMemory      = 1 << 20 // KiB
	maxDigestIterations  = 16
	maxDigestParallelism = 16
	minDigestKeyLength   = 16
	maxDigestKeyLength   = 64
)

type digestParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

// parseDigest splits "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash".
func parseDigest(digest string) (digestParams, error) {
	var p digestParams

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, fmt.Errorf("%w: expected 6 parts", ErrIntegrity)
	}
	if parts[1] != "argon2id" {
		return p, fmt.Errorf("%w: not argon2id", ErrIntegrity)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, fmt.Errorf("%w: unsupported version %q", ErrIntegrity, parts[2])
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, fmt.Errorf("%w: parameters: %v", ErrIntegrity, err)
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return p, fmt.Errorf("%w: zero parameter", ErrIntegrity)
	}
	if p.memory > maxDigestMemory || p.iterations > maxDigestIterations || p.parallelism > maxDigestParallelism {
		return p, fmt.Errorf("%w: parameters out of range", ErrIntegrity)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, fmt.Errorf("%w: salt: %v", ErrIntegrity, err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, fmt.Errorf("%w: hash: %v", ErrIntegrity, err)
	}
	if len(p.key) < minDigestKeyLength || len(p.key) > maxDigestKeyLength {
		return p, fmt.Errorf("%w: hash length %d", ErrIntegrity, len(p.key))
	}

	return p, nil
}
