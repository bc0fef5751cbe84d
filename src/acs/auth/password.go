package auth

import (
	"github.com/bitswalk/acs/src/common/errors"
	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted password hashes
type Hasher interface {
	Hash(password string) (string, error)
	// Compare reports whether password matches hash. It must take the same
	// time for a malformed hash as for a mismatch.
	Compare(hash, password string) bool
}

// BcryptHasher hashes with bcrypt at a fixed cost
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, clamped to bcrypt's valid range.
// Zero selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the work factor
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements Hasher
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.ErrHashFailed.WithCause(err)
	}
	return string(hash), nil
}

// Compare implements Hasher using bcrypt's constant-time comparison
func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
