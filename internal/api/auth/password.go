package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var _ PasswordHasher = (*BcryptPasswordHasher)(nil)

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Check(plaintext, hash string) bool
}

// BcryptPasswordHasher implements PasswordHasher on bcrypt. Each Hash
// call generates a fresh salt, so equal inputs yield distinct digests
// that still verify independently.
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher() *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptPasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Check reports whether hash was produced from plaintext. Mismatches
// and malformed hashes both report false, never an error.
func (h *BcryptPasswordHasher) Check(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
