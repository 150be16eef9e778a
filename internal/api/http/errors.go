package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/security"
)

const internalErrorMessage = "Internal server error"

type errorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

var statusBySentinel = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidState, http.StatusBadRequest},
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{security.ErrInvalidToken, http.StatusUnauthorized},
	{security.ErrExpiredToken, http.StatusUnauthorized},
	{security.ErrWrongTokenType, http.StatusUnauthorized},
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps err onto its HTTP status. Errors outside the domain
// taxonomy are logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var violation *schemaViolation
	if errors.As(err, &violation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Message: "Request does not match schema", Details: violation.details})
		return
	}
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, errorResponse{Message: clientMessage(err, m.err)})
			return
		}
	}
	logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path,
		"requestID", getRequestID(r.Context()), "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: internalErrorMessage})
}

// clientMessage drops the "<sentinel>: " prefix services put in front of
// their detail text.
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		detail := msg[i+len(prefix):]
		if sentinel == domain.ErrNotFound {
			return detail + " not found"
		}
		return detail
	}
	return msg
}
