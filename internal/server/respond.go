package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/taskdesk/internal/service"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps a service error to an HTTP status. Unknown errors become
// an opaque 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var ve *types.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Reason, Field: ve.Field})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, types.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "task not found")
	case errors.Is(err, service.ErrEmailTaken):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrConstraintViolation):
		writeErrorMessage(w, http.StatusConflict, "conflicting write")
	case errors.Is(err, types.ErrStorageUnavailable):
		writeErrorMessage(w, http.StatusServiceUnavailable, "storage unavailable, retry later")
	default:
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
