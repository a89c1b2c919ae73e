package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brokerconnect/server/internal/models"
)

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	PropertyID string `json:"propertyId"`
	Message    string `json:"message" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	senderID := currentUserID(c)
	message := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		PropertyID: req.PropertyID,
		Message:    req.Message,
	}
	if err := h.db.CreateMessage(message); err != nil {
		h.respondError(c, err, "Failed to send message")
		return
	}

	senderName, err := h.db.GetUserName(senderID)
	if err != nil {
		senderName = "Someone"
	}
	text := fmt.Sprintf("%s sent you a message", senderName)
	if req.PropertyID != "" {
		if title, err := h.db.GetPropertyTitle(req.PropertyID); err == nil {
			text = fmt.Sprintf("%s sent you a message about %s", senderName, title)
		}
	}
	h.notifications.Emit(req.ReceiverID, models.NotificationMessage, "New Message", text, message.ID)

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully"})
}

func (h *Handler) UnreadMessageCount(c *gin.Context) {
	count, err := h.db.UnreadMessageCount(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to count unread messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

func (h *Handler) ListConversations(c *gin.Context) {
	conversations, err := h.db.ListConversations(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// GetThread returns the exchange with one counterparty and marks their incoming
// messages as read.
func (h *Handler) GetThread(c *gin.Context) {
	userID := currentUserID(c)
	otherUserID := c.Param("otherUserId")
	propertyID := c.Query("propertyId")

	messages, err := h.db.ListThread(userID, otherUserID, propertyID)
	if err != nil {
		h.respondError(c, err, "Failed to load thread")
		return
	}

	if err := h.db.MarkThreadRead(userID, otherUserID, propertyID); err != nil {
		h.logger.WithError(err).Error("Failed to mark thread read")
	}

	c.JSON(http.StatusOK, messages)
}

func (h *Handler) ListPropertyChats(c *gin.Context) {
	chats, err := h.db.ListPropertyChats(c.Param("propertyId"), currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list property chats")
		return
	}
	c.JSON(http.StatusOK, chats)
}
