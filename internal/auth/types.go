package auth

import (
	"errors"
	"time"
)

// User represents a registered account.
//
// RefreshToken is the single current opaque session token: it is overwritten
// on every login and nulled on logout. PasswordHash and RefreshToken are
// never serialised.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	RefreshToken string     `json:"-"`
	RealName     string     `json:"real_name,omitempty"`
	RealSurname  string     `json:"real_surname,omitempty"`
	PhonePrefix  string     `json:"phone_prefix,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// PublicUser is the sanitized projection of a User returned to clients.
// It excludes the password hash, refresh token, id, and all timestamp and
// soft-delete fields.
type PublicUser struct {
	Username    string `json:"username"`
	RealName    string `json:"real_name,omitempty"`
	RealSurname string `json:"real_surname,omitempty"`
	PhonePrefix string `json:"phone_prefix,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Public returns the sanitized projection of the user.
// This is the only place sensitive fields are stripped; handlers must route
// every outbound user through it rather than filtering ad hoc.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username:    u.Username,
		RealName:    u.RealName,
		RealSurname: u.RealSurname,
		PhonePrefix: u.PhonePrefix,
		PhoneNumber: u.PhoneNumber,
	}
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrTokenInvalid       = errors.New("invalid token")
)
