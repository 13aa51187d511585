package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"alucam-admin/internal/audit"
	"alucam-admin/internal/models"

	"gorm.io/gorm"
)

// Stock kinds accepted by the inventory endpoints.
const (
	StockGlass     = "glass"
	StockProfile   = "profile"
	StockAccessory = "accessory"
)

// InventoryService adjusts branch stock levels. An adjustment is a signed
// delta applied inside a transaction; the resulting quantity may not go
// negative.
type InventoryService struct {
	DB    *gorm.DB
	Audit audit.Sink
}

func NewInventoryService(db *gorm.DB, sink audit.Sink) *InventoryService {
	if sink == nil {
		sink = audit.Discard{}
	}
	return &InventoryService{DB: db, Audit: sink}
}

// Adjust applies delta to the stock row of the given kind. Returns the new
// quantity on success.
func (s *InventoryService) Adjust(ctx context.Context, actorID uint, kind string, stockID uint, delta float64) (float64, error) {
	var newQty float64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case StockGlass:
			var row models.GlassStock
			if err := tx.First(&row, stockID).Error; err != nil {
				return stockLoadErr(err, kind, stockID)
			}
			newQty = row.Quantity + delta
			if newQty < 0 {
				return ErrInsufficientStock
			}
			return tx.Model(&row).Update("quantity", newQty).Error
		case StockProfile:
			var row models.ProfileStock
			if err := tx.First(&row, stockID).Error; err != nil {
				return stockLoadErr(err, kind, stockID)
			}
			newQty = row.Quantity + delta
			if newQty < 0 {
				return ErrInsufficientStock
			}
			return tx.Model(&row).Update("quantity", newQty).Error
		case StockAccessory:
			var row models.AccessoryStock
			if err := tx.First(&row, stockID).Error; err != nil {
				return stockLoadErr(err, kind, stockID)
			}
			n := row.Quantity + int(delta)
			if n < 0 {
				return ErrInsufficientStock
			}
			newQty = float64(n)
			return tx.Model(&row).Update("quantity", n).Error
		default:
			return &ValidationError{Fields: map[string]string{"kind": "invalid_value"}}
		}
	})
	if err != nil {
		return 0, err
	}
	s.Audit.Record(ctx, actorID, "Stock", stockID, "adjust_stock",
		kind+" delta="+strconv.FormatFloat(delta, 'f', -1, 64))
	return newQty, nil
}

// ListGlass returns glass stock for a branch (all branches when 0).
func (s *InventoryService) ListGlass(ctx context.Context, branchID uint) ([]models.GlassStock, error) {
	var rows []models.GlassStock
	q := s.DB.WithContext(ctx).Order("type")
	if branchID != 0 {
		q = q.Where("branch_id = ?", branchID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list glass stock: %w", err)
	}
	return rows, nil
}

func (s *InventoryService) ListProfile(ctx context.Context, branchID uint) ([]models.ProfileStock, error) {
	var rows []models.ProfileStock
	q := s.DB.WithContext(ctx).Order("type")
	if branchID != 0 {
		q = q.Where("branch_id = ?", branchID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list profile stock: %w", err)
	}
	return rows, nil
}

func (s *InventoryService) ListAccessory(ctx context.Context, branchID uint) ([]models.AccessoryStock, error) {
	var rows []models.AccessoryStock
	q := s.DB.WithContext(ctx).Order("name")
	if branchID != 0 {
		q = q.Where("branch_id = ?", branchID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list accessory stock: %w", err)
	}
	return rows, nil
}

func stockLoadErr(err error, kind string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("load %s stock %d: %w", kind, id, err)
}
