package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when no cost is configured.
// 10 rounds keeps hashing expensive enough to slow offline attacks while
// staying responsive for interactive login.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt.
// The salt is generated per call, so two hashes of the same password differ.
// The plaintext must never be logged or persisted anywhere.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
// Any failure, including a malformed hash, reports false rather than
// surfacing an error: callers treat every mismatch identically.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
