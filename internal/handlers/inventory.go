package handlers

import (
	"net/http"

	"alucam-admin/internal/auth"
	"alucam-admin/internal/httpx"
	"alucam-admin/internal/services"
)

type InventoryHandler struct {
	Svc *services.InventoryService
}

func NewInventoryHandler(svc *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{Svc: svc}
}

// List: GET /inventory?kind=glass|profile|accessory&branch_id=
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID := queryUint(r, "branch_id")
	var items any
	var err error
	switch kind := r.URL.Query().Get("kind"); kind {
	case services.StockGlass, "":
		items, err = h.Svc.ListGlass(r.Context(), branchID)
	case services.StockProfile:
		items, err = h.Svc.ListProfile(r.Context(), branchID)
	case services.StockAccessory:
		items, err = h.Svc.ListAccessory(r.Context(), branchID)
	default:
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"kind": "invalid_value"})
		return
	}
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// Adjust: POST /inventory/adjust with kind, id, delta form fields.
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	actorID, _ := auth.UserIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	id := formUint(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	qty, err := h.Svc.Adjust(r.Context(), actorID, r.FormValue("kind"), id, formFloat(r, "delta"))
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "quantity": qty})
}
