package auth

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// usersSchema mirrors the users migration.
const usersSchema = `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		refresh_token TEXT,
		real_name TEXT,
		real_surname TEXT,
		phone_prefix TEXT,
		phone_number TEXT,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
		deleted_at TEXT
	) STRICT;

	CREATE UNIQUE INDEX idx_users_username ON users(username);
	CREATE INDEX idx_users_refresh_token ON users(refresh_token);
`

// testDB opens a SQLite database in a per-test temp directory with the users
// schema applied. A file-backed database is used rather than :memory: so
// every pooled connection sees the same data.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "auth-test.db")
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(usersSchema); err != nil {
		t.Fatalf("applying users schema: %v", err)
	}
	return db
}

// seedTestUser inserts a user with the given username and a fixed password.
func seedTestUser(t *testing.T, db *sql.DB, username string) *User {
	t.Helper()

	hash, err := HashPassword("test-password", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user := &User{Username: username, PasswordHash: hash}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", username, err)
	}
	return user
}
