package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"biblionet/repository"
)

const (
	codeNotFound       = "not_found"
	codeConstraint     = "constraint_violation"
	codeInvalidRequest = "invalid_request"
	codeInternal       = "internal"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code, RequestID: requestIDFromRequest(r)})
}

// writeNotFound responds 404 with the entity+key message,
// e.g. "Book not found with ISBN 0001".
func writeNotFound(w http.ResponseWriter, r *http.Request, entity, key string) {
	e := &repository.NotFoundError{Entity: entity, Key: key}
	writeError(w, r, http.StatusNotFound, codeNotFound, e.Error())
}

// storeError responds 500 without leaking the underlying failure.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("store error", "error", err, "request_id", requestIDFromRequest(r))
	writeError(w, r, http.StatusInternalServerError, codeInternal, "internal error")
}

// nonNil maps a nil slice to an empty one so list responses encode as []
// rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
