package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/apipulse/api-pulse/internal/models"
)

func TestRegister(t *testing.T) {
	is := is.New(t)
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	})
	is.Equal(rec.Code, http.StatusCreated)

	var user map[string]interface{}
	decodeJSON(t, rec, &user)
	is.Equal(user["email"], "test@example.com")
	is.True(user["id"] != nil)

	// The password hash must never appear in responses
	_, exposed := user["hashed_password"]
	is.True(!exposed)
	is.True(!strings.Contains(rec.Body.String(), "testpass123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	is := is.New(t)
	router, _ := newTestRouter(t)

	creds := map[string]string{"email": "test@example.com", "password": "testpass123"}

	rec := doJSON(t, router, http.MethodPost, "/auth/register", creds)
	is.Equal(rec.Code, http.StatusCreated)

	rec = doJSON(t, router, http.MethodPost, "/auth/register", creds)
	is.Equal(rec.Code, http.StatusBadRequest)
}

func TestRegisterDuplicateOfSeededUser(t *testing.T) {
	is := is.New(t)
	router, db := newTestRouter(t)

	// Row inserted outside the handler, as a concurrent registration would be
	seeded := models.User{
		Email:          "test@example.com",
		HashedPassword: "irrelevant",
		CreatedAt:      time.Now().UTC(),
	}
	is.NoErr(db.Create(&seeded).Error)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	})
	is.Equal(rec.Code, http.StatusBadRequest)
	is.True(strings.Contains(rec.Body.String(), "Email already registered"))
}

func TestLogin(t *testing.T) {
	is := is.New(t)
	router, _ := newTestRouter(t)

	creds := map[string]string{"email": "test@example.com", "password": "testpass123"}
	doJSON(t, router, http.MethodPost, "/auth/register", creds)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", creds)
	is.Equal(rec.Code, http.StatusOK)

	var resp TokenResponse
	decodeJSON(t, rec, &resp)
	is.True(resp.AccessToken != "")
	is.Equal(resp.TokenType, "bearer")
}

func TestLoginInvalidCredentials(t *testing.T) {
	is := is.New(t)
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	})

	// Wrong password
	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpass",
	})
	is.Equal(rec.Code, http.StatusUnauthorized)

	// Unknown email
	rec = doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "testpass123",
	})
	is.Equal(rec.Code, http.StatusUnauthorized)
}

func TestCurrentUser(t *testing.T) {
	is := is.New(t)
	router, _ := newTestRouter(t)

	creds := map[string]string{"email": "test@example.com", "password": "testpass123"}
	doJSON(t, router, http.MethodPost, "/auth/register", creds)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", creds)
	var resp TokenResponse
	decodeJSON(t, rec, &resp)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)

	is.Equal(rec2.Code, http.StatusOK)

	var user map[string]interface{}
	decodeJSON(t, rec2, &user)
	is.Equal(user["email"], "test@example.com")
}

func TestCurrentUserRejectsBadTokens(t *testing.T) {
	router, _ := newTestRouter(t)

	expired, err := generateJWT("test@example.com", testJWTSecret, -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate expired token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing-header", header: ""},
		{name: "not-bearer", header: "Basic abc123"},
		{name: "garbage-token", header: "Bearer not.a.token"},
		{name: "expired-token", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestTokenSubjectRoundTrip(t *testing.T) {
	is := is.New(t)

	token, err := generateJWT("test@example.com", testJWTSecret, 30*time.Minute)
	is.NoErr(err)

	email, err := parseJWT(token, testJWTSecret)
	is.NoErr(err)
	is.Equal(email, "test@example.com")

	// Wrong secret must not validate
	_, err = parseJWT(token, "another-secret-0123456789abcdef")
	is.True(err != nil)
}
