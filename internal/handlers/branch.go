package handlers

import (
	"net/http"

	"alucam-admin/internal/httpx"
	"alucam-admin/internal/models"
	"alucam-admin/internal/services"

	"gorm.io/gorm"
)

type BranchHandler struct {
	DB    *gorm.DB
	Stats *services.StatsService
}

func NewBranchHandler(db *gorm.DB, stats *services.StatsService) *BranchHandler {
	return &BranchHandler{DB: db, Stats: stats}
}

// List: GET /branches
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	var branches []models.Branch
	if err := h.DB.WithContext(r.Context()).Order("id").Find(&branches).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": branches})
}

// StatsView: GET /branches/stats
func (h *BranchHandler) StatsView(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.ByBranch(r.Context())
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": stats})
}
