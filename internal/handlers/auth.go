package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/diewo77/agence-immo/auth"
	"github.com/diewo77/agence-immo/httpx"
	"github.com/diewo77/agence-immo/internal/apperr"
	"github.com/diewo77/agence-immo/internal/metrics"
	"github.com/diewo77/agence-immo/internal/models"
	"github.com/diewo77/agence-immo/internal/services"
	"github.com/diewo77/agence-immo/validation"
)

// Sessions opens and closes login sessions.
type Sessions interface {
	Authenticate(ctx context.Context, email, password string) (services.Session, error)
	Revoke(ctx context.Context, tokenID uint) error
}

type AuthHandler struct {
	sessions Sessions
}

func NewAuthHandler(sessions Sessions) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meResponse struct {
	User models.PublicUser `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	v := make(validation.Violations)
	validation.Required("email", req.Email, v)
	validation.Required("password", req.Password, v)
	if !v.Empty() {
		httpx.Error(w, r, apperr.Validation("email and password required", map[string]string(v)))
		return
	}

	sess, err := h.sessions.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrAuthentication) {
			metrics.LoginFailures.Inc()
		}
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sess)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.Authentication("authentication required"))
		return
	}
	httpx.JSON(w, http.StatusOK, meResponse{User: models.PublicUser{ID: id.UserID, Email: id.Email, Role: id.Role}})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.Authentication("authentication required"))
		return
	}
	if err := h.sessions.Revoke(r.Context(), id.TokenID); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.NoContent(w)
}
