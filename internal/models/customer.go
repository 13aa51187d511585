package models

import "time"

// Customer entity. The four aggregate columns are denormalized summaries over
// the customer's orders; they are always re-derived from the orders table
// after an order mutation, never incremented in place.
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	BranchID  uint   `gorm:"not null;index"`
	Branch    Branch `gorm:"foreignKey:BranchID"`
	FirstName string `gorm:"not null;index"`
	LastName  string `gorm:"index"`
	Phone     string `gorm:"index"`
	Email     string
	Address   string
	Note      string

	TotalOrders    int64   `gorm:"not null;default:0"`
	TotalPayment   float64 `gorm:"not null;default:0"`
	AdvancePayment float64 `gorm:"not null;default:0"`
	RemainingDebt  float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
