package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/diewo77/agence-immo/httpx"
	"github.com/diewo77/agence-immo/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// RecordStore is the list/create/delete access a record handler needs.
type RecordStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item *T) (uint, error)
	Delete(ctx context.Context, id uint) error
}

// Validator is implemented by the typed create payload of each record.
type Validator interface {
	Validate() error
}

// IDResponse is the body of a successful create.
type IDResponse struct {
	ID uint `json:"id"`
}

// RecordHandler serves list, create and delete for one record type.
// F is the create payload; build turns it into the stored row.
type RecordHandler[T any, F Validator] struct {
	store RecordStore[T]
	build func(F) T
}

func NewRecordHandler[T any, F Validator](store RecordStore[T], build func(F) T) *RecordHandler[T, F] {
	return &RecordHandler[T, F]{store: store, build: build}
}

func (h *RecordHandler[T, F]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *RecordHandler[T, F]) Create(w http.ResponseWriter, r *http.Request) {
	var fields F
	if err := httpx.DecodeJSON(r, &fields); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if err := fields.Validate(); err != nil {
		httpx.Error(w, r, err)
		return
	}

	item := h.build(fields)
	id, err := h.store.Create(r.Context(), &item)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *RecordHandler[T, F]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// parseID accepts positive integers only. Anything else cannot name a
// record, so it is reported as not found.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound("not found")
	}
	return uint(id), nil
}
