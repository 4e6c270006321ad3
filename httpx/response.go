package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/diewo77/agence-immo/internal/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; records are a few kilobytes at most.
const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error renders err with the status of its apperr kind.
// Storage failures are logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperr.KindStorage {
		zap.S().Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSONError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	JSONError(w, appErr.Kind.Status(), appErr.Message, appErr.Details)
}

// DecodeJSON decodes a single JSON object into dst, rejecting unknown fields
// and trailing data.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Validation("request body required", nil)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body required", nil)
		}
		return apperr.Validation("invalid request body", err.Error())
	}
	if dec.More() {
		return apperr.Validation("invalid request body", "unexpected data after JSON object")
	}
	return nil
}
