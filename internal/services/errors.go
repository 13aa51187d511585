package services

import (
	"errors"
	"fmt"

	"alucam-admin/internal/validation"
)

var (
	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("not_found")
	// ErrInvalidPayment: advance payment exceeds the order total.
	ErrInvalidPayment = errors.New("invalid_payment")
	// ErrPricingMismatch: the submitted total diverges from the sum of the
	// pricing breakdown components beyond the accepted epsilon.
	ErrPricingMismatch = errors.New("pricing_mismatch")
	// ErrConflict: the order changed since the editor loaded it.
	ErrConflict = errors.New("version_conflict")
	// ErrCustomerHasOrders: customers with orders cannot be deleted.
	ErrCustomerHasOrders = errors.New("customer_has_orders")
	// ErrInsufficientStock: a stock adjustment would drive quantity negative.
	ErrInsufficientStock = errors.New("insufficient_stock")
)

// ValidationError carries per-field violation codes. Detected before any
// write; the whole submission is rejected as a unit.
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation_failed: %v", map[string]string(e.Fields))
}

// AsValidation unwraps a *ValidationError if err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
