package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/carshare/backend/internal/domain"
)

// Error codes surfaced in response bodies. Stable API contract — clients
// branch on these, not on messages.
const (
	codeNotFound        = "not_found"
	codeValidation      = "validation_error"
	codeAlreadyExists   = "already_exists"
	codePromoExpired    = "promo_expired"
	codePromoLimit      = "promo_limit_reached"
	codePromoBelowMin   = "promo_below_minimum"
	codeRequestTooLarge = "request_too_large"
	codeInternal        = "internal_error"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures after the
// header is written can only be logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondServiceError maps a service-layer error onto the HTTP surface.
// notFoundMsg supplies the resource-specific message for domain.ErrNotFound
// because the handler is the layer that knows what was being looked up.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, codeAlreadyExists, "promo code already exists")
	case errors.Is(err, domain.ErrPromoExpired):
		writeError(w, http.StatusBadRequest, codePromoExpired, "promo code expired")
	case errors.Is(err, domain.ErrPromoLimitReached):
		writeError(w, http.StatusBadRequest, codePromoLimit, "promo code usage limit reached")
	case errors.Is(err, domain.ErrPromoBelowMinimum):
		writeError(w, http.StatusBadRequest, codePromoBelowMin, "order amount is below the promo minimum")
	default:
		slog.ErrorContext(r.Context(), "unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "validation error: end_at must not be before start_at" →
// "end_at must not be before start_at". Wrapping prefixes added by the
// service layer are stripped as well.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}
