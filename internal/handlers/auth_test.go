package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/agence-immo/auth"
	"github.com/diewo77/agence-immo/internal/apperr"
	"github.com/diewo77/agence-immo/internal/models"
	"github.com/diewo77/agence-immo/internal/services"
	"github.com/stretchr/testify/assert"
)

type fakeSessions struct {
	revoked []uint
}

func (f *fakeSessions) Authenticate(_ context.Context, email, password string) (services.Session, error) {
	if email == "admin@example.com" && password == "admin123" {
		return services.Session{Token: "tok", User: models.PublicUser{ID: 1, Email: email, Role: "admin"}}, nil
	}
	return services.Session{}, apperr.Authentication("invalid credentials")
}

func (f *fakeSessions) Revoke(_ context.Context, tokenID uint) error {
	f.revoked = append(f.revoked, tokenID)
	return nil
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"ok", `{"email":"admin@example.com","password":"admin123"}`, http.StatusOK,
			`{"token":"tok","user":{"id":1,"email":"admin@example.com","role":"admin"}}`},
		{"wrong password", `{"email":"admin@example.com","password":"x"}`, http.StatusUnauthorized,
			`{"error":"invalid credentials"}`},
		{"missing password", `{"email":"admin@example.com"}`, http.StatusBadRequest, ""},
		{"missing email", `{"password":"admin123"}`, http.StatusBadRequest, ""},
		{"unknown field", `{"email":"a","password":"b","remember":true}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeSessions{})
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Login(w, r)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestMeAndLogout(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewAuthHandler(sessions)
	id := auth.Identity{UserID: 4, Email: "agent@agence.fr", Role: "agent", TokenID: 9}

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r = r.WithContext(auth.WithIdentity(r.Context(), id))
	w := httptest.NewRecorder()
	h.Me(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":{"id":4,"email":"agent@agence.fr","role":"agent"}}`, w.Body.String())

	r = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r = r.WithContext(auth.WithIdentity(r.Context(), id))
	w = httptest.NewRecorder()
	h.Logout(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []uint{9}, sessions.revoked)
}

func TestMeWithoutIdentity(t *testing.T) {
	h := NewAuthHandler(&fakeSessions{})
	w := httptest.NewRecorder()
	h.Me(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
