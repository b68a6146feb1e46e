// Package auth provides authentication and session management for Filmreel Core.
//
// It implements the full credential/session lifecycle:
//   - bcrypt password hashing (salted, configurable work factor)
//   - Signed HS256 JWT access tokens carrying a minimal identity payload
//   - Opaque high-entropy refresh tokens, one current token per user,
//     rotated on login and cleared on logout
//   - A SQLite-backed user repository and refresh token store
//
// Access tokens are stateless: verification is signature + expiry only, no
// database lookup. Refresh tokens are the opposite: the stored row is the
// single source of truth, and resolving a refresh token always hits the
// user table.
package auth
