package models

import "time"

// Activity logging
type ActivityLog struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index"` // acting admin/seller
	EntityType string // ex: "Order", "Customer", "Setting"
	EntityID   uint
	Action     string // ex: "create", "update", "delete", "adjust_stock"
	Detail     string // free-text summary of the change
	RequestID  string // correlates with the X-Request-ID of the request
	CreatedAt  time.Time
}
