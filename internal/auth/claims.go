package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// defaultAccessTokenTTL applies when the configured TTL is unusable.
	defaultAccessTokenTTL = 15 * time.Minute

	// refreshTokenBytes is the number of random bytes in a refresh token.
	// 64 bytes hex-encoded gives 512 bits of entropy; collisions are not a
	// practical concern at that size.
	refreshTokenBytes = 64
)

// CustomClaims extends JWT standard claims with the session identity payload.
// The payload is deliberately minimal: user id (subject) and username.
// Passwords and refresh tokens never appear in claims.
type CustomClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateAccessToken creates a signed HS256 JWT access token for a user.
// Access tokens are short-lived (configured TTL, minutes) and validated by
// signature and expiry only - no database lookup.
func GenerateAccessToken(user *User, secret string, ttlMinutes int) (string, error) {
	ttl := time.Duration(ttlMinutes) * time.Minute
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: user.Username,
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken creates a cryptographically random opaque refresh token.
// The token carries no claims; it is only meaningful as a lookup key against
// the stored value on the user row.
func GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hs256Keyfunc returns the signing key and pins the accepted algorithm, so a
// token with an "alg" of "none" or an asymmetric scheme never validates.
func hs256Keyfunc(secret string) (jwt.Keyfunc, jwt.ParserOption) {
	keyfunc := func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}
	return keyfunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})
}

// ParseToken validates a JWT access token and returns its claims. Any
// structural, signature, or expiry violation yields ErrTokenInvalid; callers
// treat the failure as "anonymous", never as a fatal error.
func ParseToken(tokenString, secret string) (*CustomClaims, error) {
	keyfunc, methods := hs256Keyfunc(secret)
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, keyfunc, methods)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	switch {
	case !ok || !token.Valid:
		return nil, ErrTokenInvalid
	case claims.Username == "":
		return nil, fmt.Errorf("%w: missing username", ErrTokenInvalid)
	}
	return claims, nil
}
