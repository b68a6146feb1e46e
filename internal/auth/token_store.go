package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// TokenStore defines the interface for refresh token persistence.
//
// Each user row holds at most one current refresh token. Rotate overwrites
// it unconditionally (rotation is login-triggered, not refresh-chained),
// Clear nulls it, and FindByToken resolves a presented token back into the
// owning user without touching the access token at all.
type TokenStore interface {
	Rotate(ctx context.Context, userID, token string) error
	Clear(ctx context.Context, userID string) error
	FindByToken(ctx context.Context, token string) (*User, error)
}

// SQLiteTokenStore implements TokenStore against the users table.
type SQLiteTokenStore struct {
	db *sql.DB
}

// NewTokenStore creates a new SQLite-backed refresh token store.
func NewTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db}
}

// Rotate overwrites the stored refresh token for exactly one user row.
// The previous token, if any, stops resolving the moment this commits.
func (s *SQLiteTokenStore) Rotate(ctx context.Context, userID, token string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET refresh_token = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		token, now, userID,
	)
	if err != nil {
		return fmt.Errorf("rotating refresh token: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Clear nulls the stored refresh token for a user (logout).
// Clearing an already-null token is not an error.
func (s *SQLiteTokenStore) Clear(ctx context.Context, userID string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET refresh_token = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, userID,
	)
	if err != nil {
		return fmt.Errorf("clearing refresh token: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindByToken resolves a presented refresh token into its owning user.
// An unknown, cleared, or empty token yields ErrTokenInvalid.
func (s *SQLiteTokenStore) FindByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		// NULL refresh_token columns must never match an empty presented token.
		return nil, ErrTokenInvalid
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE refresh_token = ? AND deleted_at IS NULL", token)

	user, err := scanUserFrom(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}
