package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/agence-immo/internal/apperr"
	"github.com/diewo77/agence-immo/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore[T any] struct {
	items   map[uint]T
	nextID  uint
	created []T
}

func newMemStore[T any]() *memStore[T] {
	return &memStore[T]{items: make(map[uint]T), nextID: 1}
}

func (s *memStore[T]) List(context.Context) ([]T, error) {
	out := make([]T, 0, len(s.items))
	for id := uint(1); id < s.nextID; id++ {
		if it, ok := s.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *memStore[T]) Create(_ context.Context, item *T) (uint, error) {
	id := s.nextID
	s.nextID++
	s.items[id] = *item
	s.created = append(s.created, *item)
	return id, nil
}

func (s *memStore[T]) Delete(_ context.Context, id uint) error {
	if _, ok := s.items[id]; !ok {
		return apperr.NotFound("not found")
	}
	delete(s.items, id)
	return nil
}

func mandatRouter(store *memStore[models.Mandat]) http.Handler {
	h := NewRecordHandler(store, models.NewMandat)
	r := chi.NewRouter()
	r.Get("/api/mandats", h.List)
	r.Post("/api/mandats", h.Create)
	r.Delete("/api/mandats/{id}", h.Delete)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRecordCreateAndList(t *testing.T) {
	store := newMemStore[models.Mandat]()
	h := mandatRouter(store)

	w := do(h, http.MethodPost, "/api/mandats", `{"referenceMandat":"M-001","typeMandat":"vente"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
	require.Len(t, store.created, 1)
	assert.Equal(t, "vente", store.created[0].TypeMandat)

	w = do(h, http.MethodGet, "/api/mandats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "M-001", got[0]["referenceMandat"])
}

func TestRecordListEmptyIsArray(t *testing.T) {
	w := do(mandatRouter(newMemStore[models.Mandat]()), http.MethodGet, "/api/mandats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRecordCreateRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"referenceMandat":"M-001","couleur":"bleu"}`},
		{"missing required", `{"typeMandat":"vente"}`},
		{"blank required", `{"referenceMandat":"  "}`},
		{"number instead of string", `{"referenceMandat":"M-001","surfaceM2":80}`},
		{"malformed", `{"referenceMandat":`},
		{"empty body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore[models.Mandat]()
			w := do(mandatRouter(store), http.MethodPost, "/api/mandats", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			assert.Empty(t, store.created)
		})
	}
}

func TestRecordDelete(t *testing.T) {
	store := newMemStore[models.Mandat]()
	h := mandatRouter(store)
	do(h, http.MethodPost, "/api/mandats", `{"referenceMandat":"M-001"}`)

	w := do(h, http.MethodDelete, "/api/mandats/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(h, http.MethodDelete, "/api/mandats/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())

	for _, bad := range []string{"abc", "0", "-3", "1.5"} {
		w = do(h, http.MethodDelete, "/api/mandats/"+bad, "")
		assert.Equal(t, http.StatusNotFound, w.Code, bad)
		assert.JSONEq(t, `{"error":"not found"}`, w.Body.String(), bad)
	}
}

func TestGestionBlankMandatStoredAsNull(t *testing.T) {
	store := newMemStore[models.GestionLocative]()
	h := NewRecordHandler(store, models.NewGestionLocative)

	r := httptest.NewRequest(http.MethodPost, "/api/gestion", strings.NewReader(`{"numeroBien":"B-1","referenceMandat":""}`))
	w := httptest.NewRecorder()
	h.Create(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.Nil(t, store.created[0].ReferenceMandat)
}
