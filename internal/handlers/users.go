package handlers

import (
	"context"
	"net/http"

	"github.com/diewo77/agence-immo/httpx"
	"github.com/diewo77/agence-immo/internal/models"
	"github.com/diewo77/agence-immo/internal/services"
)

// Directory lists and registers accounts.
type Directory interface {
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
	CreateUser(ctx context.Context, in services.NewUser) (models.PublicUser, error)
}

// UserHandler serves the admin-only user directory.
type UserHandler struct {
	users Directory
}

func NewUserHandler(users Directory) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every account sorted by email.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

// Create registers an account from {email, password, role?}.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.NewUser
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	user, err := h.users.CreateUser(r.Context(), in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}
