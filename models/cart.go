package models

import (
	"encoding/json"
	"time"
)

// CartItem is a snapshot line inside a cart. Like purchases, cart lines copy
// the listing fields at add time rather than referencing them live.
type CartItem struct {
	FoodID            uint    `json:"foodId"`
	FoodName          string  `json:"foodName"`
	FoodImage         string  `json:"foodImage"`
	Price             float64 `json:"price"`
	Quantity          int     `json:"quantity"`
	Category          string  `json:"category"`
	AvailableQuantity int     `json:"availableQuantity"`
}

// Cart holds a user's pending selections with precomputed totals.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserEmail string    `gorm:"uniqueIndex;not null" json:"userEmail"`
	ItemsJSON string    `gorm:"type:text;not null;default:'[]'" json:"-"`
	Total     float64   `gorm:"not null;default:0" json:"total"`
	ItemCount int       `gorm:"not null;default:0" json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}

// Items decodes the stored cart lines. A corrupt payload yields an empty cart
// rather than an error; the next write repairs it.
func (c *Cart) Items() []CartItem {
	var items []CartItem
	if err := json.Unmarshal([]byte(c.ItemsJSON), &items); err != nil {
		return []CartItem{}
	}
	if items == nil {
		items = []CartItem{}
	}
	return items
}

// SetItems encodes the cart lines and recomputes Total and ItemCount.
func (c *Cart) SetItems(items []CartItem) {
	if items == nil {
		items = []CartItem{}
	}
	c.ItemCount = 0
	c.Total = 0
	for _, item := range items {
		c.ItemCount += item.Quantity
		c.Total += item.Price * float64(item.Quantity)
	}
	raw, _ := json.Marshal(items)
	c.ItemsJSON = string(raw)
}

// MarshalJSON renders the cart with its decoded items inline.
func (c Cart) MarshalJSON() ([]byte, error) {
	type alias Cart
	return json.Marshal(struct {
		alias
		Items []CartItem `json:"items"`
	}{alias: alias(c), Items: c.Items()})
}
