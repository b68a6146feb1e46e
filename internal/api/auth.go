package api

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/filmreel/filmreel-core/internal/auth"
)

// minCredentialLength is the minimum length of usernames and passwords.
const minCredentialLength = 6

// credentialsRequest is the request body for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the credential payload shape.
func (req credentialsRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required, validation.Length(minCredentialLength, 0)),
		validation.Field(&req.Password, validation.Required, validation.Length(minCredentialLength, 0)),
	)
}

// tokenResponse is the response body for register and login.
type tokenResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// handleRegister creates a new user account and logs it in immediately,
// returning both tokens so the client skips a follow-up login round trip.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		writeUnprocessable(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password, s.secCfg.Bcrypt.Cost)
	if err != nil {
		s.logger.Error("hash password failed", "error", err)
		writeInternalError(w, "failed to register user")
		return
	}

	user := &auth.User{
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			writeConflict(w, "Username already taken")
			return
		}
		s.logger.Error("create user failed", "error", err)
		writeInternalError(w, "failed to register user")
		return
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	s.issueTokens(w, r, user, http.StatusCreated, "User registered")
}

// handleLogin verifies credentials and issues a fresh token pair.
//
// A missing user and a wrong password produce the same 401 so callers
// cannot probe which usernames exist.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		writeUnprocessable(w, err)
		return
	}

	user, err := s.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		writeUnauthorized(w, "Invalid credentials")
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeUnauthorized(w, "Invalid credentials")
		return
	}

	s.issueTokens(w, r, user, http.StatusOK, "Success")
}

// issueTokens generates an access/refresh token pair, rotates the stored
// refresh token, and writes the response.
func (s *Server) issueTokens(w http.ResponseWriter, r *http.Request, user *auth.User, status int, message string) {
	accessToken, err := auth.GenerateAccessToken(user, s.secCfg.JWT.Secret, s.secCfg.JWT.AccessTokenTTL)
	if err != nil {
		s.logger.Error("generate access token failed", "error", err)
		writeInternalError(w, "failed to generate token")
		return
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		s.logger.Error("generate refresh token failed", "error", err)
		writeInternalError(w, "failed to generate token")
		return
	}

	if err := s.tokens.Rotate(r.Context(), user.ID, refreshToken); err != nil {
		s.logger.Error("rotate refresh token failed", "error", err, "user_id", user.ID)
		writeInternalError(w, "failed to generate token")
		return
	}

	writeJSON(w, status, tokenResponse{
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// handleRefreshToken exchanges a valid refresh token, sent via the
// X-Refresh-Token header, for a new access token. The refresh token itself
// is not rotated here; rotation happens on login.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := r.Header.Get("X-Refresh-Token")
	if refreshToken == "" {
		writeBadRequest(w, "Bad request")
		return
	}

	user, err := s.tokens.FindByToken(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			writeForbidden(w, "Forbidden")
			return
		}
		s.logger.Error("refresh token lookup failed", "error", err)
		writeInternalError(w, "failed to refresh token")
		return
	}

	accessToken, err := auth.GenerateAccessToken(user, s.secCfg.JWT.Secret, s.secCfg.JWT.AccessTokenTTL)
	if err != nil {
		s.logger.Error("generate access token failed", "error", err)
		writeInternalError(w, "failed to refresh token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": accessToken,
	})
}

// handleLogout clears the caller's stored refresh token. Clearing an
// already-empty token is not an error.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeBadRequest(w, "Bad request")
		return
	}

	user, err := s.users.GetByUsername(r.Context(), claims.Username)
	if err != nil {
		writeBadRequest(w, "Bad request")
		return
	}

	if err := s.tokens.Clear(r.Context(), user.ID); err != nil {
		s.logger.Error("clear refresh token failed", "error", err, "user_id", user.ID)
		writeInternalError(w, "failed to log out")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged out",
	})
}
