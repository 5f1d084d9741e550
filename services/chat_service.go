package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastehub/tastehub-api/logging"
	"github.com/tastehub/tastehub-api/metrics"
	"github.com/tastehub/tastehub-api/models"
)

// SendMessageInput carries a message send request. ClientMessageID is an
// optional idempotency key; retried sends with the same key return the
// already-persisted message instead of inserting a duplicate.
type SendMessageInput struct {
	ClientMessageID string
	SenderEmail     string
	SenderName      string
	Text            string
	File            *string
	IsAdmin         bool
	TargetEmail     string
}

// ChatService maintains the two-role messaging relation between customers
// and the admin pool: the message log, the per-customer conversation summary
// and its derived unread counter.
type ChatService struct {
	db        *gorm.DB
	directory AdminDirectory
}

// NewChatService creates a chat service using the given admin directory
func NewChatService(db *gorm.DB, directory AdminDirectory) *ChatService {
	return &ChatService{db: db, directory: directory}
}

// SendMessage persists a message and upserts the conversation summary for the
// customer side of the thread. Customer-sent messages go to the primary admin;
// admin-sent messages go to the target customer and are the only ones that
// bump the conversation's unread counter (it drives the customer-facing
// badge, the admin badge is computed live from the log).
func (s *ChatService) SendMessage(in SendMessageInput) (*models.ChatMessage, error) {
	if in.SenderEmail == "" {
		return nil, &ValidationError{Message: "senderEmail is required"}
	}
	if in.Text == "" && in.File == nil {
		return nil, &ValidationError{Message: "message text is required"}
	}
	if in.IsAdmin && in.TargetEmail == "" {
		return nil, &ValidationError{Message: "targetEmail is required for admin messages"}
	}

	admins := s.directory.AdminEmails()
	primaryAdmin := admins[0]

	receiver := primaryAdmin
	customer := in.SenderEmail
	if in.IsAdmin {
		receiver = in.TargetEmail
		customer = in.TargetEmail
	}

	clientID := in.ClientMessageID
	if clientID == "" {
		clientID = uuid.NewString()
	} else if existing, err := s.findByClientID(clientID); err != nil {
		return nil, err
	} else if existing != nil {
		// Retried send: the message and its counter update already landed.
		return existing, nil
	}

	message := models.ChatMessage{
		ClientMessageID: clientID,
		SenderEmail:     in.SenderEmail,
		SenderName:      in.SenderName,
		ReceiverEmail:   receiver,
		Text:            in.Text,
		File:            in.File,
		IsAdmin:         in.IsAdmin,
		IsRead:          false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return s.upsertConversation(tx, customer, primaryAdmin, in)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a retry race on the idempotency key; the first attempt won.
		existing, lookupErr := s.findByClientID(clientID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing != nil {
			return existing, nil
		}
		return nil, &ConflictError{Message: "message with this clientMessageId already exists"}
	}
	if err != nil {
		return nil, err
	}

	sender := "customer"
	if in.IsAdmin {
		sender = "admin"
	}
	metrics.MessagesSent.WithLabelValues(sender).Inc()
	logging.L().Info("chat message sent",
		zap.Uint("messageId", message.ID),
		zap.String("customer", customer),
		zap.Bool("isAdmin", in.IsAdmin))

	return &message, nil
}

func (s *ChatService) findByClientID(clientID string) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := s.db.Where("client_message_id = ?", clientID).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// upsertConversation creates or refreshes the denormalized summary keyed by
// the customer email. The unread counter is incremented for admin senders
// only. The customer display name is written from customer-sent messages so
// an admin reply does not rename the customer.
func (s *ChatService) upsertConversation(tx *gorm.DB, customer, primaryAdmin string, in SendMessageInput) error {
	now := time.Now()

	increment := 0
	if in.IsAdmin {
		increment = 1
	}

	conversation := models.Conversation{
		CustomerEmail:   customer,
		LastMessage:     in.Text,
		LastMessageTime: now,
		AdminAssigned:   primaryAdmin,
		UnreadCount:     increment,
		UpdatedAt:       now,
	}
	assignments := map[string]interface{}{
		"last_message":      in.Text,
		"last_message_time": now,
		"admin_assigned":    primaryAdmin,
		"unread_count":      gorm.Expr("unread_count + ?", increment),
		"updated_at":        now,
	}
	if !in.IsAdmin {
		conversation.CustomerName = in.SenderName
		assignments["customer_name"] = in.SenderName
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_email"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&conversation).Error
}

// ListMessages returns the full thread for a participant, oldest first.
func (s *ChatService) ListMessages(email string) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := s.db.
		Where("sender_email = ? OR receiver_email = ?", email, email).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListConversations returns every conversation summary, most recently active
// first (admin inbox view).
func (s *ChatService) ListConversations() ([]models.Conversation, error) {
	conversations := []models.Conversation{}
	err := s.db.Order("last_message_time DESC").Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// MarkCustomerRead marks every unread message addressed to the customer as
// read and resets the conversation's unread counter. Idempotent: a second
// call reports zero modified messages.
func (s *ChatService) MarkCustomerRead(customerEmail string) (int64, error) {
	return s.markRead(customerEmail, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("receiver_email = ? AND is_read = ?", customerEmail, false)
	})
}

// MarkAdminRead marks every unread message sent by the customer to any
// resolved admin as read. It resets the same conversation unread counter as
// MarkCustomerRead; both read directions share that field.
func (s *ChatService) MarkAdminRead(customerEmail string) (int64, error) {
	admins := s.directory.AdminEmails()
	return s.markRead(customerEmail, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("sender_email = ? AND receiver_email IN ? AND is_read = ?",
			customerEmail, admins, false)
	})
}

func (s *ChatService) markRead(customerEmail string, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var modified int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := scope(tx.Model(&models.ChatMessage{})).
			Updates(map[string]interface{}{"is_read": true, "read_at": now})
		if result.Error != nil {
			return result.Error
		}
		modified = result.RowsAffected

		return tx.Model(&models.Conversation{}).
			Where("customer_email = ?", customerEmail).
			Updates(map[string]interface{}{"unread_count": 0, "updated_at": now}).Error
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}

// UnreadCount returns the live number of unread messages addressed to the
// given participant, independent of the conversation counter.
func (s *ChatService) UnreadCount(email string) (int64, error) {
	var count int64
	err := s.db.Model(&models.ChatMessage{}).
		Where("receiver_email = ? AND is_read = ?", email, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AdminTotalUnread returns the live number of unread messages addressed to
// any member of the resolved admin pool.
func (s *ChatService) AdminTotalUnread() (int64, error) {
	admins := s.directory.AdminEmails()

	var count int64
	err := s.db.Model(&models.ChatMessage{}).
		Where("receiver_email IN ? AND is_read = ?", admins, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
