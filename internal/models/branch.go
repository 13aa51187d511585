package models

import "time"

// Branch of the fabrication business (showroom + workshop).
type Branch struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"unique;not null;index"`
	City      string
	Address   string
	Phone     string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
