package models

import (
	"time"
)

// User represents a registered account (customer or admin).
// Identity verification is delegated to the external identity provider;
// Email is the trusted identifier across the API.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UID         string    `gorm:"index" json:"uid"` // identity-provider user id
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	Role        string    `gorm:"not null;default:'customer'" json:"role"` // "customer" or "admin"
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLogin   time.Time `json:"lastLogin"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
