package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"alucam-admin/internal/db"
	"alucam-admin/internal/services"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

// branchreport prints per-branch order statistics as a terminal table.
// Usage: DATABASE_DSN=... go run ./cmd/tools/branchreport
func main() {
	_ = godotenv.Load()
	dbConn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	stats, err := services.NewStatsService(dbConn).ByBranch(context.Background())
	if err != nil {
		log.Fatalf("branch stats failed: %v", err)
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Branch", "Orders", "New", "In progress", "Delivered", "Cancelled", "Revenue", "Collected", "Outstanding", "Customers")
	for _, s := range stats {
		if err := table.Append(
			s.BranchName,
			fmt.Sprintf("%d", s.OrderCount),
			fmt.Sprintf("%d", s.NewCount),
			fmt.Sprintf("%d", s.InProgress),
			fmt.Sprintf("%d", s.Delivered),
			fmt.Sprintf("%d", s.Cancelled),
			fmt.Sprintf("%.2f", s.Revenue),
			fmt.Sprintf("%.2f", s.Collected),
			fmt.Sprintf("%.2f", s.Outstanding),
			fmt.Sprintf("%d", s.CustomerCount),
		); err != nil {
			log.Fatalf("table append: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		log.Fatalf("table render: %v", err)
	}
}
