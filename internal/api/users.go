package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/filmreel/filmreel-core/internal/auth"
)

// maxUsernameLength bounds usernames on profile updates.
const maxUsernameLength = 20

var (
	nameRe  = regexp.MustCompile(`^[a-zA-ZÀ-ÿ ]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]+$`)
)

// updateProfileRequest is the request body for profile updates.
// Nil fields are left untouched.
type updateProfileRequest struct {
	Username    *string `json:"username,omitempty"`
	RealName    *string `json:"real_name,omitempty"`
	RealSurname *string `json:"real_surname,omitempty"`
	PhonePrefix *string `json:"phone_prefix,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Validate checks the per-field shape of a profile update. The cross-field
// phone pairing rule and the "at least one field" rule are checked by the
// handler.
func (req updateProfileRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.NilOrNotEmpty, validation.Length(minCredentialLength, maxUsernameLength)),
		validation.Field(&req.RealName, validation.NilOrNotEmpty, validation.Match(nameRe)),
		validation.Field(&req.RealSurname, validation.NilOrNotEmpty, validation.Match(nameRe)),
		validation.Field(&req.PhonePrefix, validation.NilOrNotEmpty, validation.Match(phoneRe)),
		validation.Field(&req.PhoneNumber, validation.NilOrNotEmpty, validation.Match(phoneRe)),
	)
}

// empty reports whether no fields were provided at all.
func (req updateProfileRequest) empty() bool {
	return req.Username == nil && req.RealName == nil && req.RealSurname == nil &&
		req.PhonePrefix == nil && req.PhoneNumber == nil
}

// handleListUsers returns all user accounts as sanitized projections.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		writeInternalError(w, "failed to list users")
		return
	}

	public := make([]auth.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	writeJSON(w, http.StatusOK, public)
}

// handleGetSelfInfo returns the caller's own account as a sanitized
// projection. The row is re-read so the response reflects the current
// profile, not the claims frozen into the access token.
func (s *Server) handleGetSelfInfo(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	user, err := s.users.GetByUsername(r.Context(), claims.Username)
	if err != nil {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": user.Public(),
	})
}

// handleUpdateProfile applies a partial update to the caller's profile.
// Omitted fields are untouched. Phone prefix and number must be provided
// together or not at all.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.empty() {
		writeBadRequest(w, "no fields to update")
		return
	}

	if err := req.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if (req.PhonePrefix == nil) != (req.PhoneNumber == nil) {
		writeBadRequest(w, "phone prefix and number must be provided together")
		return
	}

	user, err := s.users.GetByUsername(r.Context(), claims.Username)
	if err != nil {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	if req.Username != nil && *req.Username != user.Username {
		// Advisory pre-check for a friendly error message. The unique
		// index remains the actual correctness guarantee.
		available, err := s.users.UsernameAvailable(r.Context(), *req.Username)
		if err != nil {
			s.logger.Error("username availability check failed", "error", err)
			writeInternalError(w, "failed to update profile")
			return
		}
		if !available {
			writeConflict(w, "Username already taken")
			return
		}
		user.Username = *req.Username
	}
	if req.RealName != nil {
		user.RealName = *req.RealName
	}
	if req.RealSurname != nil {
		user.RealSurname = *req.RealSurname
	}
	if req.PhonePrefix != nil {
		user.PhonePrefix = *req.PhonePrefix
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}

	if err := s.users.UpdateProfile(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			writeConflict(w, "Username already taken")
			return
		}
		s.logger.Error("update profile failed", "error", err, "user_id", user.ID)
		writeInternalError(w, "failed to update profile")
		return
	}

	s.logger.Info("profile updated", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated",
		"user":    user.Public(),
	})
}

// checkUsernameRequest is the request body for availability checks.
type checkUsernameRequest struct {
	Username string `json:"username"`
}

// handleCheckUsername reports whether a username is free to claim.
// Anonymous callers are allowed.
func (s *Server) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	var req checkUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Username == "" {
		writeBadRequest(w, "username is required")
		return
	}

	available, err := s.users.UsernameAvailable(r.Context(), req.Username)
	if err != nil {
		s.logger.Error("username availability check failed", "error", err)
		writeInternalError(w, "failed to check username")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available": available,
	})
}
