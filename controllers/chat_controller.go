package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/services"
)

// chatService builds the conversation router over the live database with the
// configured fallback admin identifier.
func chatService() *services.ChatService {
	fallback := "admin@tastehub.com"
	if cfg := config.GetConfig(); cfg != nil && cfg.AdminFallbackEmail != "" {
		fallback = cfg.AdminFallbackEmail
	}
	db := config.GetDB()
	return services.NewChatService(db, services.NewUserDirectory(db, fallback))
}

// SendMessageRequest represents the request body for sending a chat message
type SendMessageRequest struct {
	ClientMessageID string  `json:"clientMessageId"`
	SenderEmail     string  `json:"senderEmail"`
	SenderName      string  `json:"senderName"`
	Text            string  `json:"text"`
	File            *string `json:"file"`
	IsAdmin         bool    `json:"isAdmin"`
	TargetEmail     string  `json:"targetEmail"`
}

// SendChatMessage handles POST /api/chat/messages/send
func SendChatMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	message, err := chatService().SendMessage(services.SendMessageInput{
		ClientMessageID: req.ClientMessageID,
		SenderEmail:     req.SenderEmail,
		SenderName:      req.SenderName,
		Text:            req.Text,
		File:            req.File,
		IsAdmin:         req.IsAdmin,
		TargetEmail:     req.TargetEmail,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent",
		"data":    message,
	})
}

// ListChatMessages handles GET /api/chat/messages/:userEmail - the full
// thread where the user is sender or receiver, oldest first
func ListChatMessages(c *gin.Context) {
	userEmail := c.Param("userEmail")

	messages, err := chatService().ListMessages(userEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// ListConversations handles GET /api/chat/admin/conversations - the admin
// inbox, most recently active first
func ListConversations(c *gin.Context) {
	conversations, err := chatService().ListConversations()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    conversations,
	})
}

// MarkCustomerMessagesRead handles PUT /api/chat/messages/read/:customerEmail
func MarkCustomerMessagesRead(c *gin.Context) {
	customerEmail := c.Param("customerEmail")

	modified, err := chatService().MarkCustomerRead(customerEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Messages marked as read",
		"modifiedCount": modified,
	})
}

// MarkAdminMessagesRead handles PUT /api/chat/admin/messages/read/:customerEmail
func MarkAdminMessagesRead(c *gin.Context) {
	customerEmail := c.Param("customerEmail")

	modified, err := chatService().MarkAdminRead(customerEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Admin messages marked as read",
		"modifiedCount": modified,
	})
}

// GetUnreadCount handles GET /api/chat/unread-count/:userEmail - the live
// unread badge for a participant
func GetUnreadCount(c *gin.Context) {
	userEmail := c.Param("userEmail")

	count, err := chatService().UnreadCount(userEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"unreadCount": count,
	})
}

// GetAdminTotalUnread handles GET /api/chat/admin/total-unread - the live
// unread badge across the whole admin pool
func GetAdminTotalUnread(c *gin.Context) {
	count, err := chatService().AdminTotalUnread()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"totalUnread": count,
	})
}
