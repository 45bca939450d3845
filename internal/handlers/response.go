package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"smart-calculator/internal/apperr"
)

// ErrorBody is the standardised JSON error payload. Kind is set for errors
// from the apperr taxonomy.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ErrSessionMissing reports a handler mounted outside session.Middleware.
var ErrSessionMissing = errors.New("session not found on request context")

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// WriteAppError writes err with the status and kind derived from its apperr
// kind.
func WriteAppError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), NewErrorBody(err.Error(), err))
}

// NewErrorBody builds the payload for msg, tagging it with err's kind.
func NewErrorBody(msg string, err error) ErrorBody {
	body := ErrorBody{Error: msg}
	if kind, ok := apperr.KindOf(err); ok {
		body.Kind = kind.String()
	}
	return body
}

// StatusFor maps an error to its HTTP status. Errors outside the apperr
// taxonomy are internal errors.
func StatusFor(err error) int {
	kind, ok := apperr.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch kind {
	case apperr.DivisionByZero, apperr.UnknownOperation, apperr.EmptyQuestion:
		return http.StatusBadRequest
	case apperr.NoPriorCalculation:
		return http.StatusConflict
	case apperr.ProviderUnavailable:
		return http.StatusServiceUnavailable
	case apperr.ProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
