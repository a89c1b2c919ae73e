package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brokerconnect/server/internal/models"
)

type VerifyBrokerRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// ListBrokers returns every broker with their verification status so the admin
// dashboard can work the pending queue.
func (h *Handler) ListBrokers(c *gin.Context) {
	brokers, err := h.db.ListBrokers()
	if err != nil {
		h.respondError(c, err, "Failed to list brokers")
		return
	}
	c.JSON(http.StatusOK, brokers)
}

func (h *Handler) VerifyBroker(c *gin.Context) {
	var req VerifyBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status := models.VerificationRejected
	approved := req.Action == "approve"
	if approved {
		status = models.VerificationVerified
	}

	if err := h.db.SetBrokerVerification(c.Param("id"), status, approved); err != nil {
		h.respondError(c, err, "Failed to update broker verification")
		return
	}

	if approved {
		c.JSON(http.StatusOK, gin.H{"message": "Broker approved successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Broker rejected successfully"})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers()
	if err != nil {
		h.respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}
