package models

import "time"

// Order statuses. The legacy panel allows setting any status directly; no
// transition graph is enforced (see DESIGN.md).
const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists every accepted status value.
var OrderStatuses = []string{
	OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted,
	OrderStatusDelivered, OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is one of the accepted status values.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is one fabrication job. RemainingAmount is derived server-side
// (total − advance) and never trusted from the client. Version is bumped on
// every successful edit and backs optimistic concurrency checks.
type Order struct {
	ID         uint     `gorm:"primaryKey"`
	CustomerID uint     `gorm:"not null;index"`
	Customer   Customer `gorm:"foreignKey:CustomerID"`
	SellerID   uint     `gorm:"not null;index"`
	Seller     User     `gorm:"foreignKey:SellerID"`
	BranchID   uint     `gorm:"not null;index"`
	Branch     Branch   `gorm:"foreignKey:BranchID"`

	Status       string     `gorm:"not null;default:'new';index"`
	DeliveryDate *time.Time

	TotalAmount     float64 `gorm:"not null;default:0"`
	AdvancePayment  float64 `gorm:"not null;default:0"`
	RemainingAmount float64 `gorm:"not null;default:0"`
	AssemblyFee     float64 `gorm:"not null;default:0"`

	CustomerNote string // entered by the customer at placement; read-only afterwards
	SellerNote   string
	AdminNote    string
	DrawingRef   string // sketch/drawing file key, optional

	Version uint `gorm:"not null;default:1"`

	Profiles []OrderProfile `gorm:"foreignKey:OrderID"`
	Glasses  []OrderGlass   `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderProfile is one aluminum profile cut. Lines carry no identity across
// edits: the whole set is replaced on every order update.
type OrderProfile struct {
	ID         uint    `gorm:"primaryKey"`
	OrderID    uint    `gorm:"not null;index"`
	Type       string  `gorm:"not null"`
	Width      float64 `gorm:"not null"` // cm
	Height     float64 `gorm:"not null"` // cm
	Quantity   int     `gorm:"not null;default:1"`
	HingeCount int     `gorm:"not null;default:0"`
	Note       string
	CreatedAt  time.Time
}

// OrderGlass is one glass pane. Area is derived server-side as
// width*height/10000 (m²), rounded to 4 decimals.
type OrderGlass struct {
	ID         uint    `gorm:"primaryKey"`
	OrderID    uint    `gorm:"not null;index"`
	Type       string  `gorm:"not null"`
	Width      float64 `gorm:"not null"` // cm
	Height     float64 `gorm:"not null"` // cm
	Quantity   int     `gorm:"not null;default:1"`
	EdgeOffset float64 `gorm:"not null;default:0"` // mm
	Area       float64 `gorm:"not null"`           // m², derived
	CreatedAt  time.Time
}

// OrderPricing is the itemized cost snapshot behind an order total. At most
// one row per order (upsert on edit).
type OrderPricing struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"not null;uniqueIndex"`

	SideProfileLength   float64 `gorm:"not null;default:0"` // m
	SideProfilePrice    float64 `gorm:"not null;default:0"`
	HandleProfileLength float64 `gorm:"not null;default:0"` // m
	HandleProfilePrice  float64 `gorm:"not null;default:0"`
	GlassArea           float64 `gorm:"not null;default:0"` // m²
	GlassPrice          float64 `gorm:"not null;default:0"`
	HingeCount          float64 `gorm:"not null;default:0"`
	HingePrice          float64 `gorm:"not null;default:0"`
	ConnectionCount     float64 `gorm:"not null;default:0"`
	ConnectionPrice     float64 `gorm:"not null;default:0"`
	MechanismCount      float64 `gorm:"not null;default:0"`
	MechanismPrice      float64 `gorm:"not null;default:0"`
	TransportFee        float64 `gorm:"not null;default:0"`
	AssemblyFee         float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
