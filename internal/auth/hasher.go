package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the fixed bcrypt work factor for new password hashes.
const HashCost = 10

// PasswordHasher defines the minimal hashing interface (abstract so we
// can swap the algorithm without touching callers).
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher with a per-call random salt.
type BcryptHasher struct{ Cost int }

// NewBcryptHasher returns a hasher with the standard cost.
func NewBcryptHasher() BcryptHasher { return BcryptHasher{Cost: HashCost} }

func (b BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("empty password")
	}
	cost := b.Cost
	if cost == 0 {
		cost = HashCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches hash. A mismatch is a false
// return, never an error.
func (b BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
