package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/ingest"
	"passionmatch-engine/internal/profile"
	"passionmatch-engine/internal/secrets"
)

// APIError is the envelope of every non-2xx JSON response.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
		Details   any    `json:"details,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeErrorDetails(w, r, status, code, message, nil)
}

func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	e.Error.Details = details
	WriteJSON(w, status, e)
}

// writeErr maps engine errors onto status codes. Anything unrecognised is a
// 500 with fallbackCode.
func writeErr(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	var ve *config.ValidationError
	switch {
	case errors.Is(err, profile.ErrEmptyID):
		WriteError(w, r, http.StatusBadRequest, "invalid_id", err.Error())
	case errors.As(err, &ve):
		writeErrorDetails(w, r, http.StatusBadRequest, "invalid_config", "config validation failed", ve.Errors)
	case errors.Is(err, secrets.ErrPasswordNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ingest.ErrAlreadyRunning):
		WriteError(w, r, http.StatusConflict, "already_running", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		WriteError(w, r, http.StatusGatewayTimeout, "timeout", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, fallbackCode, err.Error())
	}
}
