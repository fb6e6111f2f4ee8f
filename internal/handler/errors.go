package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adventurego/backend/internal/domain"
)

// errorDetail is the machine-readable error payload returned on every
// non-2xx response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error body with the given status.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// badRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "validation_error", message)
}

// respondServiceError maps a service-layer error onto the HTTP taxonomy:
// validation and date-range violations are 400, unknown or unowned resources
// are 404, allocator exhaustion is 500, downstream unavailability is 503.
// Anything unrecognized is a logged 500 with no internals leaked to the caller.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrDateOutOfRange):
		writeError(w, http.StatusBadRequest, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrRangeExhausted),
		errors.Is(err, domain.ErrAllocationFailed):
		slog.ErrorContext(r.Context(), "allocation failure", "error", err)
		writeError(w, http.StatusInternalServerError, "allocation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", "temporarily unavailable, retry later")
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage strips the "layer.Type.Method: " wrapping prefixes from an
// error chain, leaving the human-readable part.
// e.g. "service.TripService.Create: validation error: destination is required"
// → "validation error: destination is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		head, tail, ok := strings.Cut(msg, ": ")
		if !ok || strings.ContainsAny(head, " ") || !strings.Contains(head, ".") {
			return msg
		}
		msg = tail
	}
}
