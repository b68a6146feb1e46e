package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user account persistence.
// Soft-deleted rows (non-null deleted_at) are invisible to every method.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

// SQLiteUserRepository implements UserRepository using SQLite.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed user repository.
func NewUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

const userColumns = "id, username, password_hash, refresh_token, real_name, real_surname, phone_prefix, phone_number, created_at, updated_at, deleted_at"

// Create inserts a new user account. The ID is generated if empty.
// A username collision surfaces as ErrUsernameExists; the unique index is
// the authority, not any pre-check.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	user.UpdatedAt = user.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, refresh_token, real_name, real_surname, phone_prefix, phone_number, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, nullString(user.RefreshToken),
		nullString(user.RealName), nullString(user.RealSurname),
		nullString(user.PhonePrefix), nullString(user.PhoneNumber),
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their unique ID.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getUser(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? AND deleted_at IS NULL", id)
}

// GetByUsername retrieves a user by their username. The match is exact and
// case-sensitive.
func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ? AND deleted_at IS NULL", username)
}

// List returns all live users ordered by creation date.
func (r *SQLiteUserRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE deleted_at IS NULL ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUserFrom(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	if users == nil {
		users = []User{}
	}
	return users, nil
}

// UpdateProfile writes a user's mutable profile fields (username, real name,
// surname, phone). The caller applies partial-update semantics by patching
// the fetched row first. A username collision surfaces as ErrUsernameExists.
func (r *SQLiteUserRepository) UpdateProfile(ctx context.Context, user *User) error {
	now := time.Now().UTC().Format(time.RFC3339)
	user.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, real_name = ?, real_surname = ?, phone_prefix = ?, phone_number = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		user.Username, nullString(user.RealName), nullString(user.RealSurname),
		nullString(user.PhonePrefix), nullString(user.PhoneNumber), now, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("updating user profile: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UsernameAvailable reports whether no user row holds the given username.
// Soft-deleted rows still count as taken: the unique index on username spans
// them, so an insert would fail regardless. This is an advisory fast path;
// the unique index remains the actual correctness guarantee.
func (r *SQLiteUserRepository) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking username availability: %w", err)
	}
	return count == 0, nil
}

// getUser executes a query and scans a single user result.
func (r *SQLiteUserRepository) getUser(ctx context.Context, query string, args ...any) (*User, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	return scanUserFrom(row)
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanUserFrom scans a user from any scanner (Row or Rows).
func scanUserFrom(s scanner) (*User, error) {
	var u User
	var refreshToken, realName, realSurname, phonePrefix, phoneNumber, deletedAt sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &refreshToken,
		&realName, &realSurname, &phonePrefix, &phoneNumber,
		&createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if refreshToken.Valid {
		u.RefreshToken = refreshToken.String
	}
	if realName.Valid {
		u.RealName = realName.String
	}
	if realSurname.Valid {
		u.RealSurname = realSurname.String
	}
	if phonePrefix.Valid {
		u.PhonePrefix = phonePrefix.String
	}
	if phoneNumber.Valid {
		u.PhoneNumber = phoneNumber.String
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339, deletedAt.String) //nolint:errcheck // format is controlled
		u.DeletedAt = &t
	}

	return &u, nil
}

// Helper functions.

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "unique constraint"))
}
