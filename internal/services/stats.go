package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alucam-admin/internal/models"

	"gorm.io/gorm"
)

// StatsService backs the branch statistics page and the reporting exports.
// Read-only aggregate queries; no mutation, no audit.
type StatsService struct{ DB *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{DB: db} }

// BranchStats is one row of the per-branch statistics view.
type BranchStats struct {
	BranchID      uint    `json:"branch_id"`
	BranchName    string  `json:"branch_name"`
	OrderCount    int64   `json:"order_count"`
	NewCount      int64   `json:"new_count"`
	InProgress    int64   `json:"in_progress_count"`
	Delivered     int64   `json:"delivered_count"`
	Cancelled     int64   `json:"cancelled_count"`
	Revenue       float64 `json:"revenue"`
	Collected     float64 `json:"collected"`
	Outstanding   float64 `json:"outstanding"`
	CustomerCount int64   `json:"customer_count"`
}

// ByBranch computes order/revenue aggregates per branch. Cancelled orders are
// excluded from the money columns but shown in their own count.
func (s *StatsService) ByBranch(ctx context.Context) ([]BranchStats, error) {
	var branches []models.Branch
	if err := s.DB.WithContext(ctx).Order("id").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	out := make([]BranchStats, 0, len(branches))
	for _, b := range branches {
		row := BranchStats{BranchID: b.ID, BranchName: b.Name}
		type agg struct {
			OrderCount  int64
			Revenue     float64
			Collected   float64
			Outstanding float64
		}
		var a agg
		err := s.DB.WithContext(ctx).Model(&models.Order{}).
			Select("COUNT(*) AS order_count, COALESCE(SUM(total_amount),0) AS revenue, COALESCE(SUM(advance_payment),0) AS collected, COALESCE(SUM(remaining_amount),0) AS outstanding").
			Where("branch_id = ? AND status <> ?", b.ID, models.OrderStatusCancelled).
			Scan(&a).Error
		if err != nil {
			return nil, fmt.Errorf("aggregate branch %d: %w", b.ID, err)
		}
		row.OrderCount = a.OrderCount
		row.Revenue = a.Revenue
		row.Collected = a.Collected
		row.Outstanding = a.Outstanding

		counts := map[string]*int64{
			models.OrderStatusNew:        &row.NewCount,
			models.OrderStatusProcessing: &row.InProgress,
			models.OrderStatusDelivered:  &row.Delivered,
			models.OrderStatusCancelled:  &row.Cancelled,
		}
		for status, dst := range counts {
			if err := s.DB.WithContext(ctx).Model(&models.Order{}).
				Where("branch_id = ? AND status = ?", b.ID, status).
				Count(dst).Error; err != nil {
				return nil, fmt.Errorf("count branch %d status %s: %w", b.ID, status, err)
			}
		}
		if err := s.DB.WithContext(ctx).Model(&models.Customer{}).
			Where("branch_id = ?", b.ID).Count(&row.CustomerCount).Error; err != nil {
			return nil, fmt.Errorf("count branch %d customers: %w", b.ID, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// OrderReportRow is one line of the orders export.
type OrderReportRow struct {
	OrderID      uint
	CustomerName string
	BranchName   string
	Status       string
	Total        float64
	Advance      float64
	Remaining    float64
	CreatedAt    time.Time
}

// OrdersBetween returns orders in [from, to) joined with customer and branch
// names, oldest first, for the CSV export. The customer name is assembled in
// Go; string concatenation syntax differs between the supported SQL dialects.
func (s *StatsService) OrdersBetween(ctx context.Context, from, to time.Time) ([]OrderReportRow, error) {
	var scanned []struct {
		OrderID    uint
		FirstName  string
		LastName   string
		BranchName string
		Status     string
		Total      float64
		Advance    float64
		Remaining  float64
		CreatedAt  time.Time
	}
	err := s.DB.WithContext(ctx).Model(&models.Order{}).
		Select("orders.id AS order_id, customers.first_name, customers.last_name, branches.name AS branch_name, orders.status, orders.total_amount AS total, orders.advance_payment AS advance, orders.remaining_amount AS remaining, orders.created_at").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Joins("JOIN branches ON branches.id = orders.branch_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Order("orders.id").
		Scan(&scanned).Error
	if err != nil {
		return nil, fmt.Errorf("orders report: %w", err)
	}
	rows := make([]OrderReportRow, 0, len(scanned))
	for _, r := range scanned {
		rows = append(rows, OrderReportRow{
			OrderID:      r.OrderID,
			CustomerName: strings.TrimSpace(r.FirstName + " " + r.LastName),
			BranchName:   r.BranchName,
			Status:       r.Status,
			Total:        r.Total,
			Advance:      r.Advance,
			Remaining:    r.Remaining,
			CreatedAt:    r.CreatedAt,
		})
	}
	return rows, nil
}
