package handlers

import (
	"net/http"
	"strings"

	"alucam-admin/internal/audit"
	"alucam-admin/internal/auth"
	"alucam-admin/internal/httpx"
	"alucam-admin/internal/models"

	"gorm.io/gorm"
)

type SettingsHandler struct {
	DB    *gorm.DB
	Audit audit.Sink
}

func NewSettingsHandler(db *gorm.DB, sink audit.Sink) *SettingsHandler {
	if sink == nil {
		sink = audit.Discard{}
	}
	return &SettingsHandler{DB: db, Audit: sink}
}

// List: GET /settings
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	var settings []models.Setting
	if err := h.DB.WithContext(r.Context()).Order("key").Find(&settings).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": settings})
}

// Upsert: POST /settings with key, value form fields.
func (h *SettingsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
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
	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"key": "required"})
		return
	}
	value := r.FormValue("value")

	var setting models.Setting
	err := h.DB.WithContext(r.Context()).Where("key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = models.Setting{Key: key, Value: value}
		err = h.DB.WithContext(r.Context()).Create(&setting).Error
	} else if err == nil {
		err = h.DB.WithContext(r.Context()).Model(&setting).Update("value", value).Error
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	h.Audit.Record(r.Context(), actorID, "Setting", setting.ID, "update", key+"="+value)
	httpx.JSON(w, http.StatusOK, setting)
}
