package models

import (
	"time"
)

// Purchase represents a committed order against a food listing.
// FoodName, FoodImage and Price are snapshots taken at purchase time;
// later edits to the listing never change a persisted purchase.
type Purchase struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	FoodID              uint      `gorm:"not null;index" json:"foodId"`
	FoodName            string    `gorm:"not null" json:"foodName"`
	FoodImage           string    `json:"foodImage"`
	Price               float64   `gorm:"not null" json:"price"`
	Quantity            int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	TotalPrice          float64   `gorm:"not null" json:"totalPrice"`
	BuyerName           string    `json:"buyerName"`
	BuyerEmail          string    `gorm:"not null;index" json:"buyerEmail"`
	BuyerPhoto          string    `json:"buyerPhoto"`
	DeliveryAddress     string    `gorm:"not null" json:"deliveryAddress"`
	ContactNumber       string    `gorm:"not null" json:"contactNumber"`
	SpecialInstructions string    `json:"specialInstructions"`
	PaymentMethod       string    `gorm:"not null;default:'card'" json:"paymentMethod"`
	Status              string    `gorm:"not null;default:'pending'" json:"status"` // open set, admin-settable
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}
