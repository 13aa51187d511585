package models

import "time"

// Setting is a key/value system setting (company name, default prices, ...).
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"unique;not null"`
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
