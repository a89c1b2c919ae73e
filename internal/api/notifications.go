package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	notifications, err := h.notifications.List(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Param("id"), currentUserID(c)); err != nil {
		h.respondError(c, err, "Failed to mark notification read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *Handler) UnreadNotificationCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to count unread notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
