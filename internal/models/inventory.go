package models

import "time"

// Inventory models. Stock is branch-scoped; quantity never goes negative
// (enforced by InventoryService, not the schema).

type GlassStock struct {
	ID        uint    `gorm:"primaryKey"`
	BranchID  uint    `gorm:"not null;index:idx_glass_branch_type,priority:1"`
	Type      string  `gorm:"not null;index:idx_glass_branch_type,priority:2"`
	Thickness float64 // mm
	Quantity  float64 `gorm:"not null;default:0"` // m²
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProfileStock struct {
	ID        uint    `gorm:"primaryKey"`
	BranchID  uint    `gorm:"not null;index:idx_profile_branch_type,priority:1"`
	Type      string  `gorm:"not null;index:idx_profile_branch_type,priority:2"`
	Color     string
	Quantity  float64 `gorm:"not null;default:0"` // m
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AccessoryStock struct {
	ID        uint   `gorm:"primaryKey"`
	BranchID  uint   `gorm:"not null;index:idx_acc_branch_name,priority:1"`
	Name      string `gorm:"not null;index:idx_acc_branch_name,priority:2"`
	Quantity  int    `gorm:"not null;default:0"` // pcs
	CreatedAt time.Time
	UpdatedAt time.Time
}
