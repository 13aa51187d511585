package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"alucam-admin/internal/audit"
	"alucam-admin/internal/models"
	"alucam-admin/internal/validation"

	"gorm.io/gorm"
)

// pricingEpsilon is the accepted drift between the submitted order total and
// the recomputed sum of the pricing breakdown components.
const pricingEpsilon = 0.01

// OrderService owns the order edit flow: atomically replaces an order's line
// items, recomputes derived totals, and keeps the owning customer's aggregate
// columns in sync.
type OrderService struct {
	DB    *gorm.DB
	Audit audit.Sink
}

func NewOrderService(db *gorm.DB, sink audit.Sink) *OrderService {
	if sink == nil {
		sink = audit.Discard{}
	}
	return &OrderService{DB: db, Audit: sink}
}

// OrderHeaderInput carries the editable header fields. CustomerNote is
// deliberately absent: the customer-origin note is read-only after placement.
// Version 0 skips the optimistic concurrency check (legacy clients).
type OrderHeaderInput struct {
	CustomerID     uint       `json:"customer_id"`
	SellerID       uint       `json:"seller_id"`
	BranchID       uint       `json:"branch_id"`
	Status         string     `json:"status"`
	DeliveryDate   *time.Time `json:"delivery_date"`
	TotalAmount    float64    `json:"total_amount"`
	AdvancePayment float64    `json:"advance_payment"`
	AssemblyFee    float64    `json:"assembly_fee"`
	SellerNote     string     `json:"seller_note"`
	AdminNote      string     `json:"admin_note"`
	Version        uint       `json:"version"`
}

type ProfileLineInput struct {
	Type       string  `json:"type"`
	Width      float64 `json:"width"`  // cm
	Height     float64 `json:"height"` // cm
	Quantity   int     `json:"quantity"`
	HingeCount int     `json:"hinge_count"`
	Note       string  `json:"note"`
}

// GlassLineInput carries one glass pane. Any client-submitted area is ignored;
// the service derives it from width and height.
type GlassLineInput struct {
	Type       string  `json:"type"`
	Width      float64 `json:"width"`  // cm
	Height     float64 `json:"height"` // cm
	Quantity   int     `json:"quantity"`
	EdgeOffset float64 `json:"offset"` // mm
}

type PricingInput struct {
	SideProfileLength   float64 `json:"side_profile_length"`
	SideProfilePrice    float64 `json:"side_profile_price"`
	HandleProfileLength float64 `json:"handle_profile_length"`
	HandleProfilePrice  float64 `json:"handle_profile_price"`
	GlassArea           float64 `json:"glass_area"`
	GlassPrice          float64 `json:"glass_price"`
	HingeCount          float64 `json:"hinge_count"`
	HingePrice          float64 `json:"hinge_price"`
	ConnectionCount     float64 `json:"connection_count"`
	ConnectionPrice     float64 `json:"connection_price"`
	MechanismCount      float64 `json:"mechanism_count"`
	MechanismPrice      float64 `json:"mechanism_price"`
	TransportFee        float64 `json:"transport_fee"`
	AssemblyFee         float64 `json:"assembly_fee"`
}

// ExpectedTotal recomputes the order total from the breakdown components.
func (p PricingInput) ExpectedTotal() float64 {
	return p.SideProfileLength*p.SideProfilePrice +
		p.HandleProfileLength*p.HandleProfilePrice +
		p.GlassArea*p.GlassPrice +
		p.HingeCount*p.HingePrice +
		p.ConnectionCount*p.ConnectionPrice +
		p.MechanismCount*p.MechanismPrice +
		p.TransportFee +
		p.AssemblyFee
}

type OrderUpdateInput struct {
	Header   OrderHeaderInput
	Profiles []ProfileLineInput
	Glasses  []GlassLineInput
	Pricing  PricingInput
}

// OrderView is the fully reloaded order state returned after an edit so the
// caller can re-render without a second round trip.
type OrderView struct {
	Order   models.Order         `json:"order"`
	Pricing *models.OrderPricing `json:"pricing,omitempty"`
}

// GlassArea derives the pane area in m² from cm dimensions, rounded to 4
// decimals (the precision the panel has always displayed).
func GlassArea(widthCM, heightCM float64) float64 {
	return math.Round(widthCM*heightCM/10000*1e4) / 1e4
}

// Update atomically applies the proposed order state. All validation runs
// before the first write; any failure inside the transaction rolls everything
// back. On success the reloaded view is returned and one audit record is
// emitted for the acting user.
func (s *OrderService) Update(ctx context.Context, actorID, orderID uint, in OrderUpdateInput) (*OrderView, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", orderID, err)
	}
	if in.Header.Version != 0 && in.Header.Version != order.Version {
		return nil, ErrConflict
	}
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	if in.Header.AdvancePayment > in.Header.TotalAmount {
		return nil, ErrInvalidPayment
	}
	// Strict pricing policy: the client-computed total must match the sum of
	// the breakdown components. Client arithmetic is a display hint only.
	if math.Abs(in.Pricing.ExpectedTotal()-in.Header.TotalAmount) > pricingEpsilon {
		return nil, ErrPricingMismatch
	}

	prevCustomerID := order.CustomerID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		remaining := in.Header.TotalAmount - in.Header.AdvancePayment
		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(map[string]interface{}{
				"customer_id":      in.Header.CustomerID,
				"seller_id":        in.Header.SellerID,
				"branch_id":        in.Header.BranchID,
				"status":           in.Header.Status,
				"delivery_date":    in.Header.DeliveryDate,
				"total_amount":     in.Header.TotalAmount,
				"advance_payment":  in.Header.AdvancePayment,
				"remaining_amount": remaining,
				"assembly_fee":     in.Header.AssemblyFee,
				"seller_note":      in.Header.SellerNote,
				"admin_note":       in.Header.AdminNote,
				"version":          order.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("update order header: %w", res.Error)
		}
		// A concurrent edit bumped the version between our load and this
		// write; the compare-and-swap catches it.
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		// Full replace of child collections: delete old rows first, then
		// insert the staged set, all inside this transaction.
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderProfile{}).Error; err != nil {
			return fmt.Errorf("delete profile lines: %w", err)
		}
		if len(in.Profiles) > 0 {
			rows := make([]models.OrderProfile, 0, len(in.Profiles))
			for _, p := range in.Profiles {
				rows = append(rows, models.OrderProfile{
					OrderID:    order.ID,
					Type:       p.Type,
					Width:      p.Width,
					Height:     p.Height,
					Quantity:   p.Quantity,
					HingeCount: p.HingeCount,
					Note:       p.Note,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insert profile lines: %w", err)
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderGlass{}).Error; err != nil {
			return fmt.Errorf("delete glass lines: %w", err)
		}
		if len(in.Glasses) > 0 {
			rows := make([]models.OrderGlass, 0, len(in.Glasses))
			for _, g := range in.Glasses {
				rows = append(rows, models.OrderGlass{
					OrderID:    order.ID,
					Type:       g.Type,
					Width:      g.Width,
					Height:     g.Height,
					Quantity:   g.Quantity,
					EdgeOffset: g.EdgeOffset,
					Area:       GlassArea(g.Width, g.Height),
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insert glass lines: %w", err)
			}
		}

		if err := upsertPricing(tx, order.ID, in.Pricing); err != nil {
			return err
		}

		if err := ResyncCustomerAggregates(tx, in.Header.CustomerID); err != nil {
			return err
		}
		// The edit may have moved the order to another customer; the previous
		// owner's aggregates must shrink accordingly.
		if prevCustomerID != in.Header.CustomerID {
			if err := ResyncCustomerAggregates(tx, prevCustomerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, actorID, "Order", order.ID, "update",
		"order edited: total="+strconv.FormatFloat(in.Header.TotalAmount, 'f', 2, 64)+
			" status="+in.Header.Status)

	return s.Get(ctx, orderID)
}

// Get reloads the full order view: header with line items plus the pricing row.
func (s *OrderService) Get(ctx context.Context, orderID uint) (*OrderView, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Profiles").
		Preload("Glasses").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", orderID, err)
	}
	view := &OrderView{Order: order}
	var pricing models.OrderPricing
	if err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&pricing).Error; err == nil {
		view.Pricing = &pricing
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load pricing for order %d: %w", orderID, err)
	}
	return view, nil
}

// ListParams filters the paginated order list.
type ListParams struct {
	Status   string
	BranchID uint
	Page     int
	PageSize int
}

// List returns orders newest-first with optional status/branch filters.
func (s *OrderService) List(ctx context.Context, in ListParams) ([]models.Order, int64, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 200 {
		size = 50
	}
	q := s.DB.WithContext(ctx).Model(&models.Order{})
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}
	if in.BranchID != 0 {
		q = q.Where("branch_id = ?", in.BranchID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	var orders []models.Order
	if err := q.Order("id desc").Limit(size).Offset((page - 1) * size).Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

func validateUpdate(in OrderUpdateInput) error {
	v := validation.Violations{}
	if in.Header.CustomerID == 0 {
		v["customer_id"] = "required"
	}
	if in.Header.SellerID == 0 {
		v["seller_id"] = "required"
	}
	if in.Header.BranchID == 0 {
		v["branch_id"] = "required"
	}
	if !models.ValidOrderStatus(in.Header.Status) {
		v["status"] = "invalid_value"
	}
	validation.NonNegativeFloat("total_amount", in.Header.TotalAmount, v)
	validation.NonNegativeFloat("advance_payment", in.Header.AdvancePayment, v)
	validation.NonNegativeFloat("assembly_fee", in.Header.AssemblyFee, v)

	for i, p := range in.Profiles {
		prefix := "profiles[" + strconv.Itoa(i) + "]."
		validation.Required(prefix+"type", p.Type, v)
		validation.PositiveFloat(prefix+"width", p.Width, v)
		validation.PositiveFloat(prefix+"height", p.Height, v)
		validation.MinInt(prefix+"quantity", p.Quantity, 1, v)
		validation.MinInt(prefix+"hinge_count", p.HingeCount, 0, v)
	}
	for i, g := range in.Glasses {
		prefix := "glasses[" + strconv.Itoa(i) + "]."
		validation.Required(prefix+"type", g.Type, v)
		validation.PositiveFloat(prefix+"width", g.Width, v)
		validation.PositiveFloat(prefix+"height", g.Height, v)
		validation.MinInt(prefix+"quantity", g.Quantity, 1, v)
		validation.NonNegativeFloat(prefix+"offset", g.EdgeOffset, v)
	}

	p := in.Pricing
	validation.NonNegativeFloat("pricing.side_profile_length", p.SideProfileLength, v)
	validation.NonNegativeFloat("pricing.side_profile_price", p.SideProfilePrice, v)
	validation.NonNegativeFloat("pricing.handle_profile_length", p.HandleProfileLength, v)
	validation.NonNegativeFloat("pricing.handle_profile_price", p.HandleProfilePrice, v)
	validation.NonNegativeFloat("pricing.glass_area", p.GlassArea, v)
	validation.NonNegativeFloat("pricing.glass_price", p.GlassPrice, v)
	validation.NonNegativeFloat("pricing.hinge_count", p.HingeCount, v)
	validation.NonNegativeFloat("pricing.hinge_price", p.HingePrice, v)
	validation.NonNegativeFloat("pricing.connection_count", p.ConnectionCount, v)
	validation.NonNegativeFloat("pricing.connection_price", p.ConnectionPrice, v)
	validation.NonNegativeFloat("pricing.mechanism_count", p.MechanismCount, v)
	validation.NonNegativeFloat("pricing.mechanism_price", p.MechanismPrice, v)
	validation.NonNegativeFloat("pricing.transport_fee", p.TransportFee, v)
	validation.NonNegativeFloat("pricing.assembly_fee", p.AssemblyFee, v)

	if !v.Empty() {
		return &ValidationError{Fields: v}
	}
	return nil
}

func upsertPricing(tx *gorm.DB, orderID uint, in PricingInput) error {
	fields := map[string]interface{}{
		"side_profile_length":   in.SideProfileLength,
		"side_profile_price":    in.SideProfilePrice,
		"handle_profile_length": in.HandleProfileLength,
		"handle_profile_price":  in.HandleProfilePrice,
		"glass_area":            in.GlassArea,
		"glass_price":           in.GlassPrice,
		"hinge_count":           in.HingeCount,
		"hinge_price":           in.HingePrice,
		"connection_count":      in.ConnectionCount,
		"connection_price":      in.ConnectionPrice,
		"mechanism_count":       in.MechanismCount,
		"mechanism_price":       in.MechanismPrice,
		"transport_fee":         in.TransportFee,
		"assembly_fee":          in.AssemblyFee,
	}
	var existing models.OrderPricing
	err := tx.Where("order_id = ?", orderID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := models.OrderPricing{
			OrderID:             orderID,
			SideProfileLength:   in.SideProfileLength,
			SideProfilePrice:    in.SideProfilePrice,
			HandleProfileLength: in.HandleProfileLength,
			HandleProfilePrice:  in.HandleProfilePrice,
			GlassArea:           in.GlassArea,
			GlassPrice:          in.GlassPrice,
			HingeCount:          in.HingeCount,
			HingePrice:          in.HingePrice,
			ConnectionCount:     in.ConnectionCount,
			ConnectionPrice:     in.ConnectionPrice,
			MechanismCount:      in.MechanismCount,
			MechanismPrice:      in.MechanismPrice,
			TransportFee:        in.TransportFee,
			AssemblyFee:         in.AssemblyFee,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert pricing: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load pricing: %w", err)
	}
	if err := tx.Model(&models.OrderPricing{}).Where("id = ?", existing.ID).Updates(fields).Error; err != nil {
		return fmt.Errorf("update pricing: %w", err)
	}
	return nil
}
