package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tastehub/tastehub-api/logging"
	"github.com/tastehub/tastehub-api/metrics"
	"github.com/tastehub/tastehub-api/models"
)

// CreatePurchaseInput carries the fields a buyer submits for a purchase.
// Snapshot fields (name, image, price) are taken from the listing, never from
// the client.
type CreatePurchaseInput struct {
	FoodID              uint
	Quantity            int
	BuyerName           string
	BuyerEmail          string
	BuyerPhoto          string
	DeliveryAddress     string
	ContactNumber       string
	SpecialInstructions string
	PaymentMethod       string
}

// OrderService validates and commits purchases against live inventory.
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
}

// NewOrderService creates an order service on the given database
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, inventory: NewInventoryService(db)}
}

// CreatePurchase validates the request against the listing and commits the
// purchase together with its stock reservation in one transaction. The
// reservation runs first as a conditional update, so two concurrent buyers
// of the same listing can never oversell it: the loser of the race gets the
// live available amount back, not a committed purchase.
func (s *OrderService) CreatePurchase(in CreatePurchaseInput) (*models.Purchase, error) {
	if in.BuyerEmail == "" || in.DeliveryAddress == "" || in.ContactNumber == "" {
		return nil, &ValidationError{Message: "missing required fields: foodId, buyerEmail, deliveryAddress, contactNumber"}
	}
	if in.Quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be a positive integer"}
	}

	food, err := s.inventory.GetFood(in.FoodID)
	if err != nil {
		return nil, err
	}

	if food.AddedByEmail == in.BuyerEmail {
		return nil, &ForbiddenError{Message: "you cannot purchase your own listing"}
	}

	if food.Quantity <= 0 || in.Quantity > food.Quantity {
		return nil, &InsufficientStockError{FoodName: food.FoodName, Available: food.Quantity}
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "card"
	}

	purchase := models.Purchase{
		FoodID:              food.ID,
		FoodName:            food.FoodName,
		FoodImage:           food.FoodImage,
		Price:               food.Price,
		Quantity:            in.Quantity,
		TotalPrice:          food.Price * float64(in.Quantity),
		BuyerName:           in.BuyerName,
		BuyerEmail:          in.BuyerEmail,
		BuyerPhoto:          in.BuyerPhoto,
		DeliveryAddress:     in.DeliveryAddress,
		ContactNumber:       in.ContactNumber,
		SpecialInstructions: in.SpecialInstructions,
		PaymentMethod:       paymentMethod,
		Status:              "pending",
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.inventory.ReserveStock(tx, food.ID, in.Quantity); err != nil {
			return err
		}
		return tx.Create(&purchase).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.PurchasesCreated.Inc()
	logging.L().Info("purchase created",
		zap.Uint("purchaseId", purchase.ID),
		zap.Uint("foodId", food.ID),
		zap.Int("quantity", in.Quantity),
		zap.String("buyer", in.BuyerEmail))

	return &purchase, nil
}

// ListPurchases returns purchases newest first. An empty buyerEmail returns
// every purchase (admin view).
func (s *OrderService) ListPurchases(buyerEmail string) ([]models.Purchase, error) {
	query := s.db.Order("created_at DESC")
	if buyerEmail != "" {
		query = query.Where("buyer_email = ?", buyerEmail)
	}

	purchases := []models.Purchase{}
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// UpdateStatus sets the status label on a purchase. Status is an open string
// set; any non-empty value is accepted.
func (s *OrderService) UpdateStatus(purchaseID uint, status string) error {
	if status == "" {
		return &ValidationError{Message: "status is required"}
	}

	result := s.db.Model(&models.Purchase{}).
		Where("id = ?", purchaseID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "purchase"}
	}
	return nil
}

// DeletePurchase removes a purchase record. Reserved stock is not restored;
// compensation is out of scope.
func (s *OrderService) DeletePurchase(purchaseID uint) error {
	result := s.db.Delete(&models.Purchase{}, purchaseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "purchase"}
	}
	return nil
}

// GetPurchase loads a single purchase by id
func (s *OrderService) GetPurchase(purchaseID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := s.db.First(&purchase, purchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "purchase"}
		}
		return nil, err
	}
	return &purchase, nil
}
