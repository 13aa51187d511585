package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alucam-admin/internal/audit"
	"alucam-admin/internal/models"
	"alucam-admin/internal/validation"

	"gorm.io/gorm"
)

// ResyncCustomerAggregates re-derives the customer's denormalized summary
// columns from its current order set. Always a fresh COUNT/SUM, never an
// increment, so repeated edits cannot drift the totals.
func ResyncCustomerAggregates(tx *gorm.DB, customerID uint) error {
	var agg struct {
		TotalOrders    int64
		TotalPayment   float64
		AdvancePayment float64
		RemainingDebt  float64
	}
	err := tx.Model(&models.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total_amount),0) AS total_payment, COALESCE(SUM(advance_payment),0) AS advance_payment, COALESCE(SUM(remaining_amount),0) AS remaining_debt").
		Where("customer_id = ?", customerID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("aggregate orders for customer %d: %w", customerID, err)
	}
	err = tx.Model(&models.Customer{}).Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"total_orders":    agg.TotalOrders,
			"total_payment":   agg.TotalPayment,
			"advance_payment": agg.AdvancePayment,
			"remaining_debt":  agg.RemainingDebt,
		}).Error
	if err != nil {
		return fmt.Errorf("write customer %d aggregates: %w", customerID, err)
	}
	return nil
}

// CustomerService covers the CRM surface: list/search, create, update, delete.
type CustomerService struct {
	DB    *gorm.DB
	Audit audit.Sink
}

func NewCustomerService(db *gorm.DB, sink audit.Sink) *CustomerService {
	if sink == nil {
		sink = audit.Discard{}
	}
	return &CustomerService{DB: db, Audit: sink}
}

type CustomerInput struct {
	BranchID  uint   `json:"branch_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Note      string `json:"note"`
}

func (in CustomerInput) validate() error {
	v := validation.Violations{}
	if in.BranchID == 0 {
		v["branch_id"] = "required"
	}
	validation.Required("first_name", in.FirstName, v)
	if !v.Empty() {
		return &ValidationError{Fields: v}
	}
	return nil
}

type CustomerListParams struct {
	Query    string // matches name or phone
	BranchID uint
	Page     int
	PageSize int
}

func (s *CustomerService) List(ctx context.Context, in CustomerListParams) ([]models.Customer, int64, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 200 {
		size = 50
	}
	q := s.DB.WithContext(ctx).Model(&models.Customer{})
	if in.BranchID != 0 {
		q = q.Where("branch_id = ?", in.BranchID)
	}
	if term := strings.TrimSpace(in.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR phone LIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	var customers []models.Customer
	if err := q.Order("id desc").Limit(size).Offset((page - 1) * size).Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	return customers, total, nil
}

func (s *CustomerService) Create(ctx context.Context, actorID uint, in CustomerInput) (*models.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := models.Customer{
		BranchID:  in.BranchID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   in.Address,
		Note:      in.Note,
	}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.Audit.Record(ctx, actorID, "Customer", c.ID, "create", "customer "+c.FirstName+" "+c.LastName)
	return &c, nil
}

func (s *CustomerService) Update(ctx context.Context, actorID, customerID uint, in CustomerInput) (*models.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var c models.Customer
	if err := s.DB.WithContext(ctx).First(&c, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load customer %d: %w", customerID, err)
	}
	err := s.DB.WithContext(ctx).Model(&c).Updates(map[string]interface{}{
		"branch_id":  in.BranchID,
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
		"phone":      strings.TrimSpace(in.Phone),
		"email":      strings.TrimSpace(in.Email),
		"address":    in.Address,
		"note":       in.Note,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update customer %d: %w", customerID, err)
	}
	s.Audit.Record(ctx, actorID, "Customer", c.ID, "update", "customer profile edited")
	return &c, nil
}

// Delete removes a customer that has no orders. Customers with order history
// are kept for the aggregates and the audit trail.
func (s *CustomerService) Delete(ctx context.Context, actorID, customerID uint) error {
	var c models.Customer
	if err := s.DB.WithContext(ctx).First(&c, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load customer %d: %w", customerID, err)
	}
	var orderCount int64
	if err := s.DB.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&orderCount).Error; err != nil {
		return fmt.Errorf("count customer orders: %w", err)
	}
	if orderCount > 0 {
		return ErrCustomerHasOrders
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Customer{}, customerID).Error; err != nil {
		return fmt.Errorf("delete customer %d: %w", customerID, err)
	}
	s.Audit.Record(ctx, actorID, "Customer", customerID, "delete", "customer removed")
	return nil
}
