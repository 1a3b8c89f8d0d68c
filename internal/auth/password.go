// Package auth provides password hashing, token issuance/verification and
// the role authorization decision.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor. Safe for interactive logins on a
// single server while staying deliberately slow for offline attacks.
const passwordCost = 10

// HashPassword hashes a plaintext password with bcrypt. Each call draws a
// fresh random salt, so two hashes of the same input differ.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
