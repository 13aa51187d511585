package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"alucam-admin/internal/auth"
	"alucam-admin/internal/httpx"
	"alucam-admin/internal/services"
)

type CustomerHandler struct {
	Svc *services.CustomerService
}

func NewCustomerHandler(svc *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Svc: svc}
}

// List: GET /customers?q=&branch_id=&page=&limit=
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	params := services.CustomerListParams{
		Query:    r.URL.Query().Get("q"),
		BranchID: queryUint(r, "branch_id"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 50),
	}
	customers, total, err := h.Svc.List(r.Context(), params)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": total, "page": params.Page, "limit": params.PageSize})
}

// Create: POST /customers – JSON or form
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, _ := auth.UserIDFromContext(r.Context())
	in, err := parseCustomerInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	c, err := h.Svc.Create(r.Context(), actorID, in)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /customers/update?id=
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, _ := auth.UserIDFromContext(r.Context())
	id := queryUint(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	in, err := parseCustomerInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	c, err := h.Svc.Update(r.Context(), actorID, id, in)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /customers/delete?id=
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := auth.UserIDFromContext(r.Context())
	id := queryUint(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), actorID, id); err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseCustomerInput(r *http.Request) (services.CustomerInput, error) {
	var in services.CustomerInput
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, err
		}
		return in, nil
	}
	if err := r.ParseForm(); err != nil {
		return in, err
	}
	in.BranchID = formUint(r, "branch_id")
	in.FirstName = r.FormValue("first_name")
	in.LastName = r.FormValue("last_name")
	in.Phone = r.FormValue("phone")
	in.Email = r.FormValue("email")
	in.Address = r.FormValue("address")
	in.Note = r.FormValue("note")
	return in, nil
}
