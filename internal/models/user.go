package models

import "time"

// User & auth related models
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"unique;not null;index"`
	Password  string `gorm:"not null"` // bcrypt hash
	FirstName string `gorm:"index"`
	LastName  string `gorm:"index"`
	Phone     string
	RoleID    uint   `gorm:"not null"`
	Role      Role   `gorm:"foreignKey:RoleID"`
	BranchID  uint   `gorm:"index"` // home branch, 0 for head office
	Branch    Branch `gorm:"foreignKey:BranchID"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"` // admin, manager, seller
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role names seeded at bootstrap.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSeller  = "seller"
)
