package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"alucam-admin/internal/auth"
	"alucam-admin/internal/httpx"
	"alucam-admin/internal/services"

	"gorm.io/gorm"
)

type OrderHandler struct {
	DB  *gorm.DB
	Svc *services.OrderService
}

func NewOrderHandler(db *gorm.DB, svc *services.OrderService) *OrderHandler {
	return &OrderHandler{DB: db, Svc: svc}
}

// List: GET /orders?status=&branch_id=&page=&limit=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params := services.ListParams{
		Status:   strings.TrimSpace(r.URL.Query().Get("status")),
		BranchID: queryUint(r, "branch_id"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 50),
	}
	orders, total, err := h.Svc.List(r.Context(), params)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": total, "page": params.Page, "limit": params.PageSize})
}

// View: GET /orders/view?id=
func (h *OrderHandler) View(w http.ResponseWriter, r *http.Request) {
	id := queryUint(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	view, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// Update: POST /orders/update with action=update_order. The editor submits
// scalar header fields plus three JSON-encoded string fields: profiles,
// glasses, pricing.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok || actorID == 0 {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	if r.FormValue("action") != "update_order" {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_action", nil)
		return
	}
	orderID := formUint(r, "order_id")
	if orderID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_order_id", nil)
		return
	}

	in := services.OrderUpdateInput{
		Header: services.OrderHeaderInput{
			CustomerID:     formUint(r, "customer_id"),
			SellerID:       formUint(r, "seller_id"),
			BranchID:       formUint(r, "branch_id"),
			Status:         strings.TrimSpace(r.FormValue("status")),
			TotalAmount:    formFloat(r, "total_amount"),
			AdvancePayment: formFloat(r, "advance_payment"),
			AssemblyFee:    formFloat(r, "assembly_fee"),
			SellerNote:     r.FormValue("seller_note"),
			AdminNote:      r.FormValue("admin_note"),
			Version:        formUint(r, "version"),
		},
	}
	if d := strings.TrimSpace(r.FormValue("delivery_date")); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"delivery_date": "invalid_date"})
			return
		}
		in.Header.DeliveryDate = &t
	}
	if err := decodeJSONField(r.FormValue("profiles"), &in.Profiles); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"profiles": "invalid_json"})
		return
	}
	if err := decodeJSONField(r.FormValue("glasses"), &in.Glasses); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"glasses": "invalid_json"})
		return
	}
	if p := strings.TrimSpace(r.FormValue("pricing")); p != "" {
		if err := json.Unmarshal([]byte(p), &in.Pricing); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"pricing": "invalid_json"})
			return
		}
	}

	view, err := h.Svc.Update(r.Context(), actorID, orderID, in)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// decodeJSONField decodes a JSON array field; malformed JSON (including a
// non-numeric width/height, since the payload types are numbers) is a
// per-field validation error. Unknown keys such as a client-computed area are
// ignored, not rejected.
func decodeJSONField(raw string, dst any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
