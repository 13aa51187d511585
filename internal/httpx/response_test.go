package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"alucam-admin/internal/services"
	"alucam-admin/internal/validation"
)

func TestJSONWritesNullForNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q", ct)
	}
	if body := rec.Body.String(); body != "null" {
		t.Fatalf("body = %q, want null", body)
	}
}

func TestServiceErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrNotFound, http.StatusNotFound, "not_found"},
		{services.ErrInvalidPayment, http.StatusBadRequest, "invalid_payment"},
		{services.ErrPricingMismatch, http.StatusBadRequest, "pricing_mismatch"},
		{services.ErrConflict, http.StatusConflict, "version_conflict"},
		{services.ErrCustomerHasOrders, http.StatusConflict, "customer_has_orders"},
		{services.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		ServiceError(rec, c.err)
		if rec.Code != c.status {
			t.Fatalf("%v: status = %d, want %d", c.err, rec.Code, c.status)
		}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: decode: %v", c.err, err)
		}
		if body.Error != c.code {
			t.Fatalf("%v: error = %q, want %q", c.err, body.Error, c.code)
		}
	}
}

func TestServiceErrorCarriesViolationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	ServiceError(rec, &services.ValidationError{Fields: validation.Violations{"status": "invalid_value"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "validation_failed" {
		t.Fatalf("error = %q", body.Error)
	}
	if body.Details["status"] != "invalid_value" {
		t.Fatalf("details = %v", body.Details)
	}
}
