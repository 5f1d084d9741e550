package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/models"
	"gorm.io/gorm"
)

func setupChatRouter() *gin.Engine {
	router := setupTestRouter()
	chat := router.Group("/api/chat")
	chat.POST("/messages/send", SendChatMessage)
	chat.GET("/messages/:userEmail", ListChatMessages)
	chat.PUT("/messages/read/:customerEmail", MarkCustomerMessagesRead)
	chat.GET("/unread-count/:userEmail", GetUnreadCount)
	chat.GET("/admin/conversations", ListConversations)
	chat.PUT("/admin/messages/read/:customerEmail", MarkAdminMessagesRead)
	chat.GET("/admin/total-unread", GetAdminTotalUnread)
	return router
}

func seedAdmin(t *testing.T, db *gorm.DB, email string) {
	user := models.User{UID: "uid-" + email, Email: email, DisplayName: "Admin", Role: "admin"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}
}

func customerMessage(sender, text string) map[string]interface{} {
	return map[string]interface{}{
		"senderEmail": sender,
		"senderName":  "Customer",
		"text":        text,
		"isAdmin":     false,
	}
}

func adminMessage(sender, target, text string) map[string]interface{} {
	return map[string]interface{}{
		"senderEmail": sender,
		"senderName":  "Admin",
		"text":        text,
		"isAdmin":     true,
		"targetEmail": target,
	}
}

func TestSendChatMessage(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	seedAdmin(t, db, "admin@x.com")

	router := setupChatRouter()

	t.Run("Customer message resolves receiver to primary admin", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
			customerMessage("cust@x.com", "hi"))

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "admin@x.com", data["receiverEmail"])
		assert.Equal(t, false, data["isRead"])
		assert.Equal(t, false, data["isAdmin"])
		assert.NotEmpty(t, data["clientMessageId"])

		// Customer traffic never bumps the customer-facing badge
		var conversation models.Conversation
		assert.NoError(t, db.Where("customer_email = ?", "cust@x.com").First(&conversation).Error)
		assert.Equal(t, 0, conversation.UnreadCount)
		assert.Equal(t, "Customer", conversation.CustomerName)
		assert.Equal(t, "hi", conversation.LastMessage)
		assert.Equal(t, "admin@x.com", conversation.AdminAssigned)
	})

	t.Run("Admin message targets the customer and bumps unread count", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
			adminMessage("admin@x.com", "cust@x.com", "hello"))

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "cust@x.com", data["receiverEmail"])

		var conversation models.Conversation
		assert.NoError(t, db.Where("customer_email = ?", "cust@x.com").First(&conversation).Error)
		assert.Equal(t, 1, conversation.UnreadCount)
		// Admin reply must not rename the customer
		assert.Equal(t, "Customer", conversation.CustomerName)

		w, response = performRequest(t, router, http.MethodGet, "/api/chat/unread-count/cust@x.com", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), response["unreadCount"])
	})

	t.Run("Admin message requires targetEmail", func(t *testing.T) {
		body := adminMessage("admin@x.com", "", "hello")
		w, response := performRequest(t, router, http.MethodPost, "/api/chat/messages/send", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
	})

	t.Run("Message requires text or attachment", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
			customerMessage("cust@x.com", ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
	})

	t.Run("Attachment-only message is accepted", func(t *testing.T) {
		body := customerMessage("cust@x.com", "")
		body["file"] = "attachments/receipt.png"
		w, response := performRequest(t, router, http.MethodPost, "/api/chat/messages/send", body)
		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "attachments/receipt.png", data["file"])
	})
}

func TestSendChatMessageFallsBackWithoutAdmins(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	// No admin rows at all; the directory must fall back.

	router := setupChatRouter()
	w, response := performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		customerMessage("cust@x.com", "anyone there?"))

	assert.Equal(t, http.StatusCreated, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "admin@tastehub.com", data["receiverEmail"])
}

func TestSendChatMessageIsIdempotentOnRetry(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	seedAdmin(t, db, "admin@x.com")

	router := setupChatRouter()

	body := adminMessage("admin@x.com", "cust@x.com", "your order shipped")
	body["clientMessageId"] = "retry-key-1"

	w1, response1 := performRequest(t, router, http.MethodPost, "/api/chat/messages/send", body)
	w2, response2 := performRequest(t, router, http.MethodPost, "/api/chat/messages/send", body)

	assert.Equal(t, http.StatusCreated, w1.Code)
	assert.Equal(t, http.StatusCreated, w2.Code)

	id1 := response1["data"].(map[string]interface{})["id"]
	id2 := response2["data"].(map[string]interface{})["id"]
	assert.Equal(t, id1, id2, "Retried send must return the original message")

	var messages int64
	db.Model(&models.ChatMessage{}).Count(&messages)
	assert.Equal(t, int64(1), messages)

	// The retry must not double-increment the unread counter
	var conversation models.Conversation
	assert.NoError(t, db.Where("customer_email = ?", "cust@x.com").First(&conversation).Error)
	assert.Equal(t, 1, conversation.UnreadCount)
}

func TestUnreadCountConsistency(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	seedAdmin(t, db, "admin@x.com")

	router := setupChatRouter()

	// N admin sends, zero reads: the live badge equals N.
	const sends = 4
	for i := 0; i < sends; i++ {
		w, _ := performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
			adminMessage("admin@x.com", "cust@x.com", fmt.Sprintf("update %d", i)))
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w, response := performRequest(t, router, http.MethodGet, "/api/chat/unread-count/cust@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(sends), response["unreadCount"])

	var conversation models.Conversation
	assert.NoError(t, db.Where("customer_email = ?", "cust@x.com").First(&conversation).Error)
	assert.Equal(t, sends, conversation.UnreadCount)

	// mark_customer_read zeroes both views
	w, response = performRequest(t, router, http.MethodPut, "/api/chat/messages/read/cust@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(sends), response["modifiedCount"])

	w, response = performRequest(t, router, http.MethodGet, "/api/chat/unread-count/cust@x.com", nil)
	assert.Equal(t, float64(0), response["unreadCount"])

	// Idempotent: a second read pass touches nothing
	w, response = performRequest(t, router, http.MethodPut, "/api/chat/messages/read/cust@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), response["modifiedCount"])

	assert.NoError(t, db.Where("customer_email = ?", "cust@x.com").First(&conversation).Error)
	assert.Equal(t, 0, conversation.UnreadCount)

	var readAt []models.ChatMessage
	db.Where("receiver_email = ?", "cust@x.com").Find(&readAt)
	for _, message := range readAt {
		assert.True(t, message.IsRead)
		assert.NotNil(t, message.ReadAt)
	}
}

func TestMarkAdminMessagesRead(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	seedAdmin(t, db, "admin@x.com")
	seedAdmin(t, db, "second-admin@x.com")

	router := setupChatRouter()

	for i := 0; i < 3; i++ {
		performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
			customerMessage("cust@x.com", fmt.Sprintf("question %d", i)))
	}
	// Traffic from another customer stays untouched
	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		customerMessage("other@x.com", "unrelated"))

	w, response := performRequest(t, router, http.MethodGet, "/api/chat/admin/total-unread", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), response["totalUnread"])

	w, response = performRequest(t, router, http.MethodPut, "/api/chat/admin/messages/read/cust@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), response["modifiedCount"])

	w, response = performRequest(t, router, http.MethodGet, "/api/chat/admin/total-unread", nil)
	assert.Equal(t, float64(1), response["totalUnread"])
}

// Both read directions reset the same conversation counter: an admin opening
// the thread erases the customer's pending badge. Clients rely on the live
// per-message count instead of the conversation field for the customer badge.
func TestMarkAdminReadZeroesCustomerBadgeCounter(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	seedAdmin(t, db, "admin@x.com")

	router := setupChatRouter()

	// Admin sends two messages the customer has not read yet
	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		adminMessage("admin@x.com", "cust@x.com", "one"))
	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		adminMessage("admin@x.com", "cust@x.com", "two"))

	// The customer also wrote, so the admin has something to mark read
	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		customerMessage("cust@x.com", "thanks"))

	var conversation models.Conversation
	assert.NoError(t, db.Where("customer_email = ?", "cust@x.com").First(&conversation).Error)
	assert.Equal(t, 2, conversation.UnreadCount)

	performRequest(t, router, http.MethodPut, "/api/chat/admin/messages/read/cust@x.com", nil)

	// The admin-side read wiped the customer-side counter, while the
	// customer's live unread count still sees both admin messages.
	assert.NoError(t, db.Where("customer_email = ?", "cust@x.com").First(&conversation).Error)
	assert.Equal(t, 0, conversation.UnreadCount)

	w, response := performRequest(t, router, http.MethodGet, "/api/chat/unread-count/cust@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), response["unreadCount"])
}

func TestListChatMessages(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	seedAdmin(t, db, "admin@x.com")

	router := setupChatRouter()

	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		customerMessage("cust@x.com", "first"))
	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		adminMessage("admin@x.com", "cust@x.com", "second"))
	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		customerMessage("cust@x.com", "third"))
	performRequest(t, router, http.MethodPost, "/api/chat/messages/send",
		customerMessage("other@x.com", "not in this thread"))

	w, response := performRequest(t, router, http.MethodGet, "/api/chat/messages/cust@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].([]interface{})
	assert.Len(t, data, 3)
	assert.Equal(t, "first", data[0].(map[string]interface{})["text"])
	assert.Equal(t, "second", data[1].(map[string]interface{})["text"])
	assert.Equal(t, "third", data[2].(map[string]interface{})["text"])
}

func TestListConversations(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	base := time.Now()
	db.Create(&models.Conversation{CustomerEmail: "old@x.com", LastMessage: "a", LastMessageTime: base.Add(-2 * time.Hour)})
	db.Create(&models.Conversation{CustomerEmail: "new@x.com", LastMessage: "b", LastMessageTime: base})
	db.Create(&models.Conversation{CustomerEmail: "mid@x.com", LastMessage: "c", LastMessageTime: base.Add(-1 * time.Hour)})

	router := setupChatRouter()

	w, response := performRequest(t, router, http.MethodGet, "/api/chat/admin/conversations", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].([]interface{})
	assert.Len(t, data, 3)
	assert.Equal(t, "new@x.com", data[0].(map[string]interface{})["customerEmail"])
	assert.Equal(t, "mid@x.com", data[1].(map[string]interface{})["customerEmail"])
	assert.Equal(t, "old@x.com", data[2].(map[string]interface{})["customerEmail"])
}
