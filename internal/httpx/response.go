// Package httpx holds the JSON response helpers shared by every handler,
// including the mapping from service errors to HTTP statuses.
package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"alucam-admin/internal/services"
)

// errorBody is the envelope for every non-2xx response.
type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload as the response body with the given status. A nil
// payload results in a JSON null body rather than an empty one.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes the error envelope.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, errorBody{Error: msg, Details: details})
}

// ServiceError maps service-layer errors to HTTP responses. Validation
// failures carry their field map in details; unknown errors are logged
// server-side and surfaced as a generic internal_error.
func ServiceError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidation(err); ok {
		JSONError(w, http.StatusBadRequest, "validation_failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrInvalidPayment):
		JSONError(w, http.StatusBadRequest, "invalid_payment", nil)
	case errors.Is(err, services.ErrPricingMismatch):
		JSONError(w, http.StatusBadRequest, "pricing_mismatch", nil)
	case errors.Is(err, services.ErrConflict):
		JSONError(w, http.StatusConflict, "version_conflict", nil)
	case errors.Is(err, services.ErrCustomerHasOrders):
		JSONError(w, http.StatusConflict, "customer_has_orders", nil)
	case errors.Is(err, services.ErrInsufficientStock):
		JSONError(w, http.StatusConflict, "insufficient_stock", nil)
	default:
		log.Printf("internal error: %v", err)
		JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
