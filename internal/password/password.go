package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a salted bcrypt hash from a plaintext password. Hashing the
// same password twice yields different strings; each is independently
// verifiable.
func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A malformed hash is treated
// as a mismatch, never an error, so callers cannot tell a bad password from
// bad stored material.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
