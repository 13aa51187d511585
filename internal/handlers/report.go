package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"alucam-admin/internal/httpx"
	"alucam-admin/internal/services"
)

type ReportHandler struct {
	Stats *services.StatsService
}

func NewReportHandler(stats *services.StatsService) *ReportHandler {
	return &ReportHandler{Stats: stats}
}

// OrdersCSV: GET /reports/orders.csv?from=2026-01-01&to=2026-02-01
// Defaults to the last 30 days when the range is omitted.
func (h *ReportHandler) OrdersCSV(w http.ResponseWriter, r *http.Request) {
	to := time.Now().Add(24 * time.Hour).Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -31)
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"from": "invalid_date"})
			return
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"to": "invalid_date"})
			return
		}
		to = t
	}
	rows, err := h.Stats.OrdersBetween(r.Context(), from, to)
	if err != nil {
		httpx.ServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"order_id", "customer", "branch", "status", "total", "advance", "remaining", "created_at"})
	for _, row := range rows {
		_ = cw.Write([]string{
			strconv.FormatUint(uint64(row.OrderID), 10),
			row.CustomerName,
			row.BranchName,
			row.Status,
			strconv.FormatFloat(row.Total, 'f', 2, 64),
			strconv.FormatFloat(row.Advance, 'f', 2, 64),
			strconv.FormatFloat(row.Remaining, 'f', 2, 64),
			row.CreatedAt.Format("2006-01-02"),
		})
	}
	cw.Flush()
}
