package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brokerconnect/server/internal/booking"
	"brokerconnect/server/internal/database"
)

// respondError logs the failure and maps it onto the HTTP error taxonomy. Detail
// for unexpected errors is only exposed in development mode.
func (h *Handler) respondError(c *gin.Context, err error, logMsg string) {
	h.logger.WithError(err).Error(logMsg)

	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, booking.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to modify this booking"})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking state does not allow this action"})
	case errors.Is(err, booking.ErrInvalidStatus), errors.Is(err, booking.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, database.ErrNotInitialized):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not initialized"})
	default:
		body := gin.H{"error": "Server error"}
		if h.cfg.IsDevelopment() {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
