// Package auth provides password hashing and bearer-token issuance
// and verification for the task manager.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and verifies one-way password digests.
type PasswordHasher interface {
	// Hash returns a salted digest of the plaintext password.
	Hash(password string) (string, error)
	// Verify reports whether the plaintext password matches the digest.
	Verify(password, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	// cost is the bcrypt work factor.
	cost int
}

// NewBcryptHasher constructs a BcryptHasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash generates a bcrypt digest of the password. The salt is generated
// per call, so two hashes of the same password differ.
func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares the password against the digest. A malformed digest
// verifies false rather than returning an error.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
