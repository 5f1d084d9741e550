package models

import (
	"time"
)

// FoodItem represents a food listing in the marketplace
type FoodItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FoodName      string    `gorm:"not null" json:"foodName"`
	FoodImage     string    `json:"foodImage"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Origin        string    `json:"origin"`
	Price         float64   `gorm:"not null" json:"price"`
	Quantity      int       `gorm:"not null;check:quantity >= 0" json:"quantity"`          // remaining stock, never negative
	PurchaseCount int       `gorm:"not null;default:0" json:"purchaseCount"`               // cumulative units sold
	AddedByName   string    `json:"addedByName"`
	AddedByEmail  string    `gorm:"not null;index" json:"addedByEmail"` // listing owner
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the FoodItem model
func (FoodItem) TableName() string {
	return "foods"
}
