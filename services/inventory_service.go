package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tastehub/tastehub-api/logging"
	"github.com/tastehub/tastehub-api/metrics"
	"github.com/tastehub/tastehub-api/models"
)

// InventoryService owns the stock and purchase-count fields of food listings.
// The reservation is the only write in the system that needs a true atomicity
// guarantee, so it is issued as a single conditional UPDATE rather than a
// read followed by a blind write.
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates an inventory service on the given database
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// GetFood loads a listing by id
func (s *InventoryService) GetFood(foodID uint) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "food item"}
		}
		return nil, err
	}
	return &food, nil
}

// ReserveStock atomically decrements quantity and increments purchase_count
// by the requested amount, conditioned on quantity still covering the request
// at write time. When the condition no longer holds it re-reads the listing
// to report the live available amount; a listing deleted underneath the
// reservation surfaces as NotFoundError.
func (s *InventoryService) ReserveStock(tx *gorm.DB, foodID uint, quantity int) error {
	if tx == nil {
		tx = s.db
	}

	result := tx.Model(&models.FoodItem{}).
		Where("id = ? AND quantity >= ?", foodID, quantity).
		Updates(map[string]interface{}{
			"quantity":       gorm.Expr("quantity - ?", quantity),
			"purchase_count": gorm.Expr("purchase_count + ?", quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows: either the stock drained since validation or the listing is
	// gone. Distinguish the two for the caller.
	metrics.ReservationConflicts.Inc()

	var food models.FoodItem
	err := tx.First(&food, foodID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Entity: "food item"}
	case err != nil:
		return err
	}

	logging.L().Warn("stock reservation refused at write time",
		zap.Uint("foodId", foodID),
		zap.Int("requested", quantity),
		zap.Int("available", food.Quantity))

	return &InsufficientStockError{FoodName: food.FoodName, Available: food.Quantity}
}

// AdjustStock overwrites quantity and/or purchase count on a listing (admin
// edit path). Negative values are refused so the overwrite cannot break the
// non-negativity invariant the ledger maintains.
func (s *InventoryService) AdjustStock(foodID uint, quantity, purchaseCount *int) error {
	updates := map[string]interface{}{}
	if quantity != nil {
		if *quantity < 0 {
			return &ValidationError{Message: "quantity cannot be negative"}
		}
		updates["quantity"] = *quantity
	}
	if purchaseCount != nil {
		if *purchaseCount < 0 {
			return &ValidationError{Message: "purchaseCount cannot be negative"}
		}
		updates["purchase_count"] = *purchaseCount
	}
	if len(updates) == 0 {
		return &ValidationError{Message: "quantity or purchaseCount is required"}
	}

	result := s.db.Model(&models.FoodItem{}).Where("id = ?", foodID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "food item"}
	}
	return nil
}
