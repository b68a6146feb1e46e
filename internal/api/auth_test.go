package api

import (
	"net/http"
	"testing"

	"github.com/filmreel/filmreel-core/internal/auth"
)

func TestRegisterIssuesTokens(t *testing.T) {
	_, handler := testServer(t)

	tokens := registerUser(t, handler, "alice1", "secret1")

	if tokens.AccessToken == "" {
		t.Error("register did not return an access token")
	}
	if tokens.RefreshToken == "" {
		t.Error("register did not return a refresh token")
	}

	claims, err := auth.ParseToken(tokens.AccessToken, testJWTSecret)
	if err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if claims.Username != "alice1" {
		t.Errorf("token username = %q, want alice1", claims.Username)
	}
}

func TestRegisterShapeViolations(t *testing.T) {
	_, handler := testServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"short username", credentialsRequest{Username: "bob", Password: "secret1"}},
		{"short password", credentialsRequest{Username: "bobby1", Password: "pw"}},
		{"missing password", map[string]string{"username": "bobby1"}},
		{"missing username", map[string]string{"password": "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/users/register", tt.body, nil)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, handler := testServer(t)

	registerUser(t, handler, "alice1", "secret1")

	rec := doJSON(t, handler, http.MethodPost, "/users/register", credentialsRequest{
		Username: "alice1",
		Password: "different1",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	// The first account still works.
	rec = doJSON(t, handler, http.MethodPost, "/users/login", credentialsRequest{
		Username: "alice1",
		Password: "secret1",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("login after duplicate register = %d, want 200", rec.Code)
	}
}

func TestLoginAfterRegister(t *testing.T) {
	_, handler := testServer(t)

	registerUser(t, handler, "alice1", "secret1")

	rec := doJSON(t, handler, http.MethodPost, "/users/login", credentialsRequest{
		Username: "alice1",
		Password: "secret1",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var tokens tokenResponse
	decodeBody(t, rec, &tokens)
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("login did not return both tokens")
	}

	if _, err := auth.ParseToken(tokens.AccessToken, testJWTSecret); err != nil {
		t.Errorf("access token does not verify: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	_, handler := testServer(t)

	registerUser(t, handler, "alice1", "secret1")

	tests := []struct {
		name string
		req  credentialsRequest
	}{
		{"wrong password", credentialsRequest{Username: "alice1", Password: "wrong-password"}},
		{"unknown user", credentialsRequest{Username: "nobody1", Password: "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/users/login", tt.req, nil)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}

			// Both failures produce the same body so usernames cannot
			// be enumerated.
			var e Error
			decodeBody(t, rec, &e)
			if e.Message != "Invalid credentials" {
				t.Errorf("message = %q, want Invalid credentials", e.Message)
			}
		})
	}
}

func TestLoginRotatesRefreshToken(t *testing.T) {
	_, handler := testServer(t)

	first := registerUser(t, handler, "alice1", "secret1")

	rec := doJSON(t, handler, http.MethodPost, "/users/login", credentialsRequest{
		Username: "alice1",
		Password: "secret1",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d", rec.Code)
	}
	var second tokenResponse
	decodeBody(t, rec, &second)

	if second.RefreshToken == first.RefreshToken {
		t.Error("login did not rotate the refresh token")
	}

	// The old token no longer resolves to a session.
	rec = doJSON(t, handler, http.MethodPost, "/users/refresh-token", nil, map[string]string{
		"X-Refresh-Token": first.RefreshToken,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("refresh with rotated-out token = %d, want 403", rec.Code)
	}
}

func TestRefreshToken(t *testing.T) {
	_, handler := testServer(t)

	tokens := registerUser(t, handler, "alice1", "secret1")

	rec := doJSON(t, handler, http.MethodPost, "/users/refresh-token", nil, map[string]string{
		"X-Refresh-Token": tokens.RefreshToken,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	accessToken := body["access_token"]
	if accessToken == "" {
		t.Fatal("refresh did not return an access token")
	}

	claims, err := auth.ParseToken(accessToken, testJWTSecret)
	if err != nil {
		t.Fatalf("refreshed access token does not verify: %v", err)
	}
	if claims.Username != "alice1" {
		t.Errorf("token username = %q, want alice1", claims.Username)
	}
}

func TestRefreshTokenMissingHeader(t *testing.T) {
	_, handler := testServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/users/refresh-token", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRefreshTokenUnknownToken(t *testing.T) {
	_, handler := testServer(t)

	registerUser(t, handler, "alice1", "secret1")

	rec := doJSON(t, handler, http.MethodPost, "/users/refresh-token", nil, map[string]string{
		"X-Refresh-Token": "not-a-real-token",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	_, handler := testServer(t)

	tokens := registerUser(t, handler, "alice1", "secret1")
	authHeader := map[string]string{"Authorization": "Bearer " + tokens.AccessToken}

	rec := doJSON(t, handler, http.MethodPost, "/users/logout", nil, authHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout = %d: %s", rec.Code, rec.Body.String())
	}

	// The refresh token was cleared.
	rec = doJSON(t, handler, http.MethodPost, "/users/refresh-token", nil, map[string]string{
		"X-Refresh-Token": tokens.RefreshToken,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("refresh after logout = %d, want 403", rec.Code)
	}

	// Logging out twice is still a success for an authenticated caller.
	rec = doJSON(t, handler, http.MethodPost, "/users/logout", nil, authHeader)
	if rec.Code != http.StatusOK {
		t.Errorf("second logout = %d, want 200", rec.Code)
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	_, handler := testServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/users/logout", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestFullSessionLifecycle walks one account through the entire auth
// surface: register, login, self-info, logout, stale refresh.
func TestFullSessionLifecycle(t *testing.T) {
	_, handler := testServer(t)

	tokens := registerUser(t, handler, "alice1", "secret1")

	rec := doJSON(t, handler, http.MethodPost, "/users/login", credentialsRequest{
		Username: "alice1",
		Password: "secret1",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d", rec.Code)
	}
	decodeBody(t, rec, &tokens)

	authHeader := map[string]string{"Authorization": "Bearer " + tokens.AccessToken}

	rec = doJSON(t, handler, http.MethodGet, "/users/get-self-info", nil, authHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("get-self-info = %d: %s", rec.Code, rec.Body.String())
	}
	var selfInfo struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, rec, &selfInfo)
	if selfInfo.User["username"] != "alice1" {
		t.Errorf("self-info username = %v, want alice1", selfInfo.User["username"])
	}
	for _, forbidden := range []string{"password_hash", "refresh_token", "id", "created_at"} {
		if _, ok := selfInfo.User[forbidden]; ok {
			t.Errorf("self-info leaks %q", forbidden)
		}
	}

	rec = doJSON(t, handler, http.MethodPost, "/users/logout", nil, authHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/users/refresh-token", nil, map[string]string{
		"X-Refresh-Token": tokens.RefreshToken,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("refresh after logout = %d, want 403", rec.Code)
	}
}
