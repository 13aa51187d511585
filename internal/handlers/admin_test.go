package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"alucam-admin/internal/auth"
	"alucam-admin/internal/models"
	"alucam-admin/internal/services"
)

func TestCustomerCreateAndDeleteFlow(t *testing.T) {
	db := setupHandlerTestDB(t)
	user, order := seedOrderWeb(t, db)
	h := NewCustomerHandler(services.NewCustomerService(db, nil))

	// create via JSON
	body := `{"branch_id":` + strconv.Itoa(int(order.BranchID)) + `,"first_name":"Veli","phone":"05440001122"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// deleting the order's customer is refused
	delReq := httptest.NewRequest(http.MethodPost, "/customers/delete?id="+strconv.Itoa(int(order.CustomerID)), nil)
	delReq = delReq.WithContext(auth.WithUserID(delReq.Context(), user.ID))
	delW := httptest.NewRecorder()
	h.Delete(delW, delReq)
	if delW.Code != http.StatusConflict {
		t.Fatalf("expected 409 for customer with orders, got %d", delW.Code)
	}

	// the fresh customer can go
	delReq = httptest.NewRequest(http.MethodPost, "/customers/delete?id="+strconv.Itoa(int(created.ID)), nil)
	delReq = delReq.WithContext(auth.WithUserID(delReq.Context(), user.ID))
	delW = httptest.NewRecorder()
	h.Delete(delW, delReq)
	if delW.Code != http.StatusOK {
		t.Fatalf("delete expected 200 got %d body=%s", delW.Code, delW.Body.String())
	}
}

func TestInventoryAdjustEndpoint(t *testing.T) {
	db := setupHandlerTestDB(t)
	user, _ := seedOrderWeb(t, db)
	row := models.ProfileStock{BranchID: 1, Type: "Yan", Color: "beyaz", Quantity: 30}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	h := NewInventoryHandler(services.NewInventoryService(db, nil))

	form := url.Values{}
	form.Set("kind", services.StockProfile)
	form.Set("id", strconv.Itoa(int(row.ID)))
	form.Set("delta", "-12.5")
	req := httptest.NewRequest(http.MethodPost, "/inventory/adjust", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	w := httptest.NewRecorder()
	h.Adjust(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["quantity"].(float64) != 17.5 {
		t.Fatalf("quantity = %v, want 17.5", resp["quantity"])
	}

	// draining past zero is a conflict
	form.Set("delta", "-100")
	req = httptest.NewRequest(http.MethodPost, "/inventory/adjust", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	w = httptest.NewRecorder()
	h.Adjust(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSettingsUpsert(t *testing.T) {
	db := setupHandlerTestDB(t)
	user, _ := seedOrderWeb(t, db)
	h := NewSettingsHandler(db, nil)

	post := func(key, value string) *httptest.ResponseRecorder {
		form := url.Values{}
		form.Set("key", key)
		form.Set("value", value)
		req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
		w := httptest.NewRecorder()
		h.Upsert(w, req)
		return w
	}

	if w := post("company_name", "Alucam"); w.Code != http.StatusOK {
		t.Fatalf("insert expected 200 got %d", w.Code)
	}
	if w := post("company_name", "Alucam Ltd"); w.Code != http.StatusOK {
		t.Fatalf("update expected 200 got %d", w.Code)
	}
	var count int64
	db.Model(&models.Setting{}).Where("key = ?", "company_name").Count(&count)
	if count != 1 {
		t.Fatalf("settings rows = %d, want 1 (upsert)", count)
	}
	var s models.Setting
	db.Where("key = ?", "company_name").First(&s)
	if s.Value != "Alucam Ltd" {
		t.Fatalf("value = %q, want updated", s.Value)
	}
}

func TestReportOrdersCSV(t *testing.T) {
	db := setupHandlerTestDB(t)
	seedOrderWeb(t, db)
	h := NewReportHandler(services.NewStatsService(db))

	req := httptest.NewRequest(http.MethodGet, "/reports/orders.csv", nil)
	w := httptest.NewRecorder()
	h.OrdersCSV(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Fatalf("content-type = %s, want text/csv", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want header+1: %q", len(lines), w.Body.String())
	}
	if !strings.HasPrefix(lines[0], "order_id,") {
		t.Fatalf("missing header row: %q", lines[0])
	}

	// bad date range
	req = httptest.NewRequest(http.MethodGet, "/reports/orders.csv?from=dun", nil)
	w = httptest.NewRecorder()
	h.OrdersCSV(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", w.Code)
	}
}
