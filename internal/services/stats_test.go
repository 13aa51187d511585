package services

import (
	"context"
	"testing"
	"time"

	"alucam-admin/internal/models"
)

func TestBranchStats(t *testing.T) {
	db := setupTestDB(t)
	seller, customer, order := seedOrderFixtures(t, db)
	// a cancelled order: counted, but excluded from money columns
	cancelled := models.Order{
		CustomerID: customer.ID, SellerID: seller.ID, BranchID: order.BranchID,
		Status: models.OrderStatusCancelled, TotalAmount: 999, RemainingAmount: 999, Version: 1,
	}
	if err := db.Create(&cancelled).Error; err != nil {
		t.Fatalf("cancelled order: %v", err)
	}

	stats, err := NewStatsService(db).ByBranch(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("branches = %d, want 1", len(stats))
	}
	s := stats[0]
	if s.OrderCount != 1 {
		t.Fatalf("order_count = %d, want 1 (cancelled excluded)", s.OrderCount)
	}
	if s.Cancelled != 1 || s.NewCount != 1 {
		t.Fatalf("status counts wrong: %+v", s)
	}
	if s.Revenue != 800 || s.Collected != 300 || s.Outstanding != 500 {
		t.Fatalf("money columns wrong: %+v", s)
	}
	if s.CustomerCount != 1 {
		t.Fatalf("customer_count = %d, want 1", s.CustomerCount)
	}
}

func TestOrdersBetween(t *testing.T) {
	db := setupTestDB(t)
	_, _, order := seedOrderFixtures(t, db)

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)
	rows, err := NewStatsService(db).OrdersBetween(context.Background(), from, to)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.OrderID != order.ID || r.CustomerName != "Ali Kaya" || r.BranchName != "Merkez" {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.Total != 800 || r.Remaining != 500 {
		t.Fatalf("amounts wrong: %+v", r)
	}

	// empty window
	rows, err = NewStatsService(db).OrdersBetween(context.Background(), from.AddDate(-1, 0, 0), from)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}
