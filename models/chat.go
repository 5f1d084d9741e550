package models

import (
	"time"
)

// ChatMessage represents a single message between a customer and the admin
// pool. Immutable after creation except for the read-transition fields.
type ChatMessage struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ClientMessageID string     `gorm:"uniqueIndex;not null" json:"clientMessageId"` // idempotency key for retried sends
	SenderEmail     string     `gorm:"not null;index" json:"senderEmail"`
	SenderName      string     `json:"senderName"`
	ReceiverEmail   string     `gorm:"not null;index" json:"receiverEmail"`
	Text            string     `gorm:"type:text;not null" json:"text"`
	File            *string    `json:"file"` // optional attachment key
	IsAdmin         bool       `gorm:"not null;default:false" json:"isAdmin"`
	IsRead          bool       `gorm:"not null;default:false" json:"isRead"`
	ReadAt          *time.Time `json:"readAt,omitempty"`
	CreatedAt       time.Time  `json:"timestamp"`
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// Conversation is the denormalized per-customer summary of a message thread.
// UnreadCount tracks admin-to-customer messages awaiting the customer's read;
// customer-to-admin traffic never increments it.
type Conversation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerEmail   string    `gorm:"uniqueIndex;not null" json:"customerEmail"`
	CustomerName    string    `json:"customerName"`
	LastMessage     string    `gorm:"type:text" json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	AdminAssigned   string    `json:"adminAssigned"`
	UnreadCount     int       `gorm:"not null;default:0" json:"unreadCount"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}
